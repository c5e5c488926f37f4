package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/token"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		role, ok := RoleFromContext(r.Context())
		assert.True(t, ok)
		w.Header().Set("X-User-ID", userID)
		w.Header().Set("X-User-Role", role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_AcceptsAccessToken(t *testing.T) {
	access, err := token.Generate(testSecret, "user-1", entity.RoleStaff, token.TypeAccess, time.Minute)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", "Bearer "+access)

	JWTAuth(testSecret, &logger.NoOpLogger{})(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Header().Get("X-User-ID"))
	assert.Equal(t, entity.RoleStaff, rec.Header().Get("X-User-Role"))
}

func TestJWTAuth_RejectsMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)

	JWTAuth(testSecret, &logger.NoOpLogger{})(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsRefreshToken(t *testing.T) {
	refresh, err := token.Generate(testSecret, "user-1", entity.RoleStaff, token.TypeRefresh, time.Minute)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)

	JWTAuth(testSecret, &logger.NoOpLogger{})(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsExpiredToken(t *testing.T) {
	expired, err := token.Generate(testSecret, "user-1", entity.RoleStaff, token.TypeAccess, -time.Minute)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", "Bearer "+expired)

	JWTAuth(testSecret, &logger.NoOpLogger{})(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsWrongSecret(t *testing.T) {
	forged, err := token.Generate("other-secret", "user-1", entity.RoleAdmin, token.TypeAccess, time.Minute)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	JWTAuth(testSecret, &logger.NoOpLogger{})(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name    string
		role    string
		allowed []string
		status  int
	}{
		{"admin on admin route", entity.RoleAdmin, []string{entity.RoleAdmin}, http.StatusOK},
		{"staff on admin route", entity.RoleStaff, []string{entity.RoleAdmin}, http.StatusForbidden},
		{"dispatch on challan route", entity.RoleDispatch, []string{entity.RoleDispatch, entity.RoleAdmin}, http.StatusOK},
		{"staff on challan route", entity.RoleStaff, []string{entity.RoleDispatch, entity.RoleAdmin}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			access, err := token.Generate(testSecret, "user-1", tc.role, token.TypeAccess, time.Minute)
			assert.NoError(t, err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
			req.Header.Set("Authorization", "Bearer "+access)

			chain := JWTAuth(testSecret, &logger.NoOpLogger{})(RequireRole(tc.allowed...)(next))
			chain.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRequireRole_WithoutAuthContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)

	RequireRole(entity.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
