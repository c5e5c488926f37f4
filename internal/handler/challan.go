package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
	"github.com/go-chi/chi/v5"
)

type ChallanHandler struct {
	svc *service.ChallanService
	log logger.Logger
}

func NewChallanHandler(svc *service.ChallanService, log logger.Logger) *ChallanHandler {
	return &ChallanHandler{svc: svc, log: log.With("handler", "challan")}
}

type createChallanRequest struct {
	ChallanNumber string `json:"challanNumber"`
	BankOrderID   string `json:"bankOrderId"`
	CourierID     string `json:"courierId"`
	Remarks       string `json:"remarks"`
}

func (h *ChallanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChallanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.BankOrderID == "" {
		fieldErrors["bankOrderId"] = "bankOrderId is required"
	}
	if req.CourierID == "" {
		fieldErrors["courierId"] = "courierId is required"
	}
	if len(fieldErrors) > 0 {
		respondValidation(w, r, fieldErrors)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	challan, err := h.svc.Create(r.Context(), actorID, service.CreateChallanInput{
		ChallanNumber: req.ChallanNumber,
		BankOrderID:   req.BankOrderID,
		CourierID:     req.CourierID,
		Remarks:       req.Remarks,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Challan created successfully", toChallanResponse(challan))
}

func (h *ChallanHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	challans, pageInfo, err := h.svc.List(r.Context(), page, limit,
		r.URL.Query().Get("status"), r.URL.Query().Get("bankOrderId"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondPaginated(w, "Challans retrieved successfully", toChallanResponses(challans), pageInfo)
}

func (h *ChallanHandler) Get(w http.ResponseWriter, r *http.Request) {
	challan, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Challan retrieved successfully", toChallanResponse(challan))
}

type updateChallanRequest struct {
	CourierID *string `json:"courierId"`
	Status    *string `json:"status"`
	Remarks   *string `json:"remarks"`
}

func (h *ChallanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateChallanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	challan, err := h.svc.Update(r.Context(), actorID, chi.URLParam(r, "id"), service.UpdateChallanInput{
		CourierID: req.CourierID,
		Status:    req.Status,
		Remarks:   req.Remarks,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Challan updated successfully", toChallanResponse(challan))
}

func (h *ChallanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Challan deleted successfully", nil)
}
