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

type CategoryHandler struct {
	svc *service.CategoryService
	log logger.Logger
}

func NewCategoryHandler(svc *service.CategoryService, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log.With("handler", "category")}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondValidation(w, r, map[string]string{"name": "name is required"})
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	category, err := h.svc.Create(r.Context(), actorID, service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Category created successfully", toCategoryResponse(category))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	categories, pageInfo, err := h.svc.List(r.Context(), page, limit, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondPaginated(w, "Categories retrieved successfully", toCategoryResponses(categories), pageInfo)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Category retrieved successfully", toCategoryResponse(category))
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondValidation(w, r, map[string]string{"name": "name cannot be empty"})
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	category, err := h.svc.Update(r.Context(), actorID, chi.URLParam(r, "id"), repository.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Category updated successfully", toCategoryResponse(category))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Category deleted successfully", nil)
}
