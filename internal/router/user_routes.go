package router

import (
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/handler"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// User administration is admin-only.
func setupUserRoutes(r *chi.Mux, h *handler.UserHandler, jwtSecret string, log logger.Logger) {
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.JWTAuth(jwtSecret, log))
		admin.Use(middleware.RequireRole(entity.RoleAdmin))

		admin.Post("/api/users", h.Create)
		admin.Get("/api/users", h.List)
		admin.Get("/api/users/{id}", h.Get)
		admin.Put("/api/users/{id}", h.Update)
		admin.Delete("/api/users/{id}", h.Delete)
	})
}
