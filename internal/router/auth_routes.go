package router

import (
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/handler"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

func setupAuthRoutes(r *chi.Mux, h *handler.AuthHandler, jwtSecret string, log logger.Logger) {
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/refresh", h.Refresh)
	r.Post("/api/auth/forgot-password", h.ForgotPassword)
	r.Post("/api/auth/reset-password", h.ResetPassword)

	r.Group(func(auth chi.Router) {
		auth.Use(middleware.JWTAuth(jwtSecret, log))

		auth.Post("/api/auth/logout", h.Logout)
		auth.Get("/api/auth/profile", h.Profile)
		auth.Post("/api/auth/change-password", h.ChangePassword)
	})
}
