package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
	"github.com/go-chi/chi/v5"
)

type VendorHandler struct {
	svc *service.VendorService
	log logger.Logger
}

func NewVendorHandler(svc *service.VendorService, log logger.Logger) *VendorHandler {
	return &VendorHandler{svc: svc, log: log.With("handler", "vendor")}
}

type createVendorRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondValidation(w, r, map[string]string{"name": "name is required"})
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	vendor, err := h.svc.Create(r.Context(), actorID, service.CreateVendorInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Vendor created successfully", toVendorResponse(vendor))
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	vendors, pageInfo, err := h.svc.List(r.Context(), page, limit, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondPaginated(w, "Vendors retrieved successfully", toVendorResponses(vendors), pageInfo)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Vendor retrieved successfully", toVendorResponse(vendor))
}

type updateVendorRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondValidation(w, r, map[string]string{"name": "name cannot be empty"})
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	vendor, err := h.svc.Update(r.Context(), actorID, chi.URLParam(r, "id"), repository.VendorPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Vendor updated successfully", toVendorResponse(vendor))
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Vendor deleted successfully", nil)
}
