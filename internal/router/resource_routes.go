package router

import (
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// crudHandler is the surface every resource handler exposes.
type crudHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func mountCRUD(r chi.Router, path string, h crudHandler) {
	r.Post(path, h.Create)
	r.Get(path, h.List)
	r.Get(path+"/{id}", h.Get)
	r.Put(path+"/{id}", h.Update)
	r.Delete(path+"/{id}", h.Delete)
}

// setupResourceRoutes mounts the back-office resources. Staff and admin
// manage catalog and orders; challans are handled by dispatch and admin.
func setupResourceRoutes(r *chi.Mux, h Handlers, jwtSecret string, log logger.Logger) {
	r.Group(func(staff chi.Router) {
		staff.Use(middleware.JWTAuth(jwtSecret, log))
		staff.Use(middleware.RequireRole(entity.RoleStaff, entity.RoleAdmin))

		mountCRUD(staff, "/api/categories", h.Category)
		mountCRUD(staff, "/api/couriers", h.Courier)
		mountCRUD(staff, "/api/vendors", h.Vendor)
		mountCRUD(staff, "/api/orders", h.BankOrder)
		mountCRUD(staff, "/api/purchase-orders", h.PurchaseOrder)
	})

	r.Group(func(dispatch chi.Router) {
		dispatch.Use(middleware.JWTAuth(jwtSecret, log))
		dispatch.Use(middleware.RequireRole(entity.RoleDispatch, entity.RoleAdmin))

		mountCRUD(dispatch, "/api/challans", h.Challan)
	})
}
