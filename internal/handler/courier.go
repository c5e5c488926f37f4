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

type CourierHandler struct {
	svc *service.CourierService
	log logger.Logger
}

func NewCourierHandler(svc *service.CourierService, log logger.Logger) *CourierHandler {
	return &CourierHandler{svc: svc, log: log.With("handler", "courier")}
}

type createCourierRequest struct {
	Name        string `json:"name"`
	CourierType string `json:"courierType"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Status      string `json:"status"`
}

func (h *CourierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCourierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.Name == "" {
		fieldErrors["name"] = "name is required"
	}
	if req.CourierType == "" {
		fieldErrors["courierType"] = "courierType is required"
	}
	if len(fieldErrors) > 0 {
		respondValidation(w, r, fieldErrors)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	courier, err := h.svc.Create(r.Context(), actorID, service.CreateCourierInput{
		Name:        req.Name,
		CourierType: req.CourierType,
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Courier created successfully", toCourierResponse(courier))
}

func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	couriers, pageInfo, err := h.svc.List(r.Context(), page, limit, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondPaginated(w, "Couriers retrieved successfully", toCourierResponses(couriers), pageInfo)
}

func (h *CourierHandler) Get(w http.ResponseWriter, r *http.Request) {
	courier, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Courier retrieved successfully", toCourierResponse(courier))
}

type updateCourierRequest struct {
	Name        *string `json:"name"`
	CourierType *string `json:"courierType"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Status      *string `json:"status"`
}

func (h *CourierHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCourierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	courier, err := h.svc.Update(r.Context(), actorID, chi.URLParam(r, "id"), repository.CourierPatch{
		Name:        req.Name,
		CourierType: req.CourierType,
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Courier updated successfully", toCourierResponse(courier))
}

func (h *CourierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Courier deleted successfully", nil)
}
