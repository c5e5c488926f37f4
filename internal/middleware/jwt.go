package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/token"
)

// JWTAuth validates the Bearer token and injects user id and role into
// the request context. Refresh tokens are rejected here; they are only
// accepted by the refresh endpoint body.
func JWTAuth(secret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Authorization header is missing or malformed", http.StatusUnauthorized)
				return
			}

			claims, err := token.Parse(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debugf("rejected token: %v", err)
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}
			if claims.TokenType != token.TypeAccess {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
