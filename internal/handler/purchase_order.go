package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
	"github.com/go-chi/chi/v5"
)

type PurchaseOrderHandler struct {
	svc *service.PurchaseOrderService
	log logger.Logger
}

func NewPurchaseOrderHandler(svc *service.PurchaseOrderService, log logger.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{svc: svc, log: log.With("handler", "purchase_order")}
}

type createPurchaseOrderRequest struct {
	PONumber string                 `json:"poNumber"`
	VendorID string                 `json:"vendorId"`
	Items    []purchaseOrderItemDTO `json:"items"`
	Status   string                 `json:"status"`
}

func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.VendorID == "" {
		fieldErrors["vendorId"] = "vendorId is required"
	}
	if len(req.Items) == 0 {
		fieldErrors["items"] = "at least one item is required"
	}
	for _, it := range req.Items {
		if it.ProductName == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			fieldErrors["items"] = "each item requires productName, positive quantity and non-negative unitPrice"
			break
		}
	}
	if len(fieldErrors) > 0 {
		respondValidation(w, r, fieldErrors)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	po, err := h.svc.Create(r.Context(), actorID, service.CreatePurchaseOrderInput{
		PONumber: req.PONumber,
		VendorID: req.VendorID,
		Items:    toItemEntities(req.Items),
		Status:   req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Purchase order created successfully", toPurchaseOrderResponse(po))
}

func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	orders, pageInfo, err := h.svc.List(r.Context(), page, limit,
		r.URL.Query().Get("status"), r.URL.Query().Get("vendorId"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondPaginated(w, "Purchase orders retrieved successfully", toPurchaseOrderResponses(orders), pageInfo)
}

func (h *PurchaseOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	po, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Purchase order retrieved successfully", toPurchaseOrderResponse(po))
}

type updatePurchaseOrderRequest struct {
	VendorID *string                `json:"vendorId"`
	Items    []purchaseOrderItemDTO `json:"items"`
	Status   *string                `json:"status"`
}

func (h *PurchaseOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	for _, it := range req.Items {
		if it.ProductName == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			respondValidation(w, r, map[string]string{
				"items": "each item requires productName, positive quantity and non-negative unitPrice",
			})
			return
		}
	}

	in := service.UpdatePurchaseOrderInput{VendorID: req.VendorID, Status: req.Status}
	if req.Items != nil {
		in.Items = toItemEntities(req.Items)
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	po, err := h.svc.Update(r.Context(), actorID, chi.URLParam(r, "id"), in)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Purchase order updated successfully", toPurchaseOrderResponse(po))
}

func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Purchase order deleted successfully", nil)
}
