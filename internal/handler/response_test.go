package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRespondSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	respondSuccess(rec, http.StatusCreated, "Category created successfully", map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
	assert.Equal(t, "Category created successfully", body["message"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, "abc", body["data"].(map[string]interface{})["id"])
}

func TestRespondPaginatedSpreadsPageInfo(t *testing.T) {
	rec := httptest.NewRecorder()

	respondPaginated(rec, "Categories retrieved successfully", []string{}, &service.PageInfo{
		Total:      21,
		Page:       2,
		Limit:      10,
		TotalPages: 3,
	})

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Pagination metadata sits at the top level, not nested under data.
	assert.Equal(t, float64(21), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.NotNil(t, body["data"])
}

func TestRespondValidationListsFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)

	respondValidation(rec, req, map[string]string{"name": "name is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/api/categories", body.Path)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "name is required", body.Errors["name"])
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"duplicate name", repository.ErrDuplicateName, http.StatusConflict},
		{"duplicate number", repository.ErrDuplicateNumber, http.StatusConflict},
		{"invalid id", repository.ErrInvalidID, http.StatusBadRequest},
		{"invalid status", service.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account locked", service.ErrAccountLocked, http.StatusLocked},
		{"invalid reset token", service.ErrInvalidResetToken, http.StatusBadRequest},
		{"invalid refresh", service.ErrInvalidRefresh, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/categories/123", nil)

			respondServiceError(rec, req, &logger.NoOpLogger{}, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body errorEnvelope
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.StatusCode)
			assert.Equal(t, "/api/categories/123", body.Path)
		})
	}
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)

	respondServiceError(rec, req, &logger.NoOpLogger{}, errors.New("mongo: connection reset"))

	var body errorEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Message)
}
