package router

import (
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/handler"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Category      *handler.CategoryHandler
	Courier       *handler.CourierHandler
	Vendor        *handler.VendorHandler
	BankOrder     *handler.BankOrderHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Challan       *handler.ChallanHandler
}

// New assembles the full route tree. Auth endpoints are public; every
// resource group runs behind JWTAuth plus a role guard.
func New(h Handlers, jwtSecret string, m *metrics.Manager, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(m))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	setupAuthRoutes(r, h.Auth, jwtSecret, log)
	setupUserRoutes(r, h.User, jwtSecret, log)
	setupResourceRoutes(r, h, jwtSecret, log)

	return r
}
