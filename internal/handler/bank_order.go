package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
	"github.com/go-chi/chi/v5"
)

type BankOrderHandler struct {
	svc *service.BankOrderService
	log logger.Logger
}

func NewBankOrderHandler(svc *service.BankOrderService, log logger.Logger) *BankOrderHandler {
	return &BankOrderHandler{svc: svc, log: log.With("handler", "bank_order")}
}

type createBankOrderRequest struct {
	OrderNumber  string  `json:"orderNumber"`
	BankName     string  `json:"bankName"`
	ProductName  string  `json:"productName"`
	CategoryID   string  `json:"categoryId"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
	CustomerName string  `json:"customerName"`
	Status       string  `json:"status"`
}

func (h *BankOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBankOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.BankName == "" {
		fieldErrors["bankName"] = "bankName is required"
	}
	if req.ProductName == "" {
		fieldErrors["productName"] = "productName is required"
	}
	if req.CategoryID == "" {
		fieldErrors["categoryId"] = "categoryId is required"
	}
	if req.Quantity <= 0 {
		fieldErrors["quantity"] = "quantity must be greater than zero"
	}
	if req.Amount < 0 {
		fieldErrors["amount"] = "amount cannot be negative"
	}
	if len(fieldErrors) > 0 {
		respondValidation(w, r, fieldErrors)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	order, err := h.svc.Create(r.Context(), actorID, service.CreateBankOrderInput{
		OrderNumber:  req.OrderNumber,
		BankName:     req.BankName,
		ProductName:  req.ProductName,
		CategoryID:   req.CategoryID,
		Quantity:     req.Quantity,
		Amount:       req.Amount,
		CustomerName: req.CustomerName,
		Status:       req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Order created successfully", toBankOrderResponse(order))
}

func (h *BankOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	orders, pageInfo, err := h.svc.List(r.Context(), page, limit,
		r.URL.Query().Get("status"), r.URL.Query().Get("bankName"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondPaginated(w, "Orders retrieved successfully", toBankOrderResponses(orders), pageInfo)
}

func (h *BankOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Order retrieved successfully", toBankOrderResponse(order))
}

type updateBankOrderRequest struct {
	BankName     *string  `json:"bankName"`
	ProductName  *string  `json:"productName"`
	CategoryID   *string  `json:"categoryId"`
	Quantity     *int     `json:"quantity"`
	Amount       *float64 `json:"amount"`
	CustomerName *string  `json:"customerName"`
	Status       *string  `json:"status"`
}

func (h *BankOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBankOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		respondValidation(w, r, map[string]string{"quantity": "quantity must be greater than zero"})
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	order, err := h.svc.Update(r.Context(), actorID, chi.URLParam(r, "id"), service.UpdateBankOrderInput{
		BankName:     req.BankName,
		ProductName:  req.ProductName,
		CategoryID:   req.CategoryID,
		Quantity:     req.Quantity,
		Amount:       req.Amount,
		CustomerName: req.CustomerName,
		Status:       req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Order updated successfully", toBankOrderResponse(order))
}

func (h *BankOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Order deleted successfully", nil)
}
