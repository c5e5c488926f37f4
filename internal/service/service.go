package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// SessionStore is the authoritative refresh-token cache, keyed by user
// id. The Redis TokenStore implements it.
type SessionStore interface {
	Save(ctx context.Context, userID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Invalidate(ctx context.Context, userID string) error
}

// PageInfo carries the pagination metadata every list operation returns.
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// normalizePaging applies the 1/10 defaults and derives the skip offset.
func normalizePaging(page, limit int64) (int64, int64, int64) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

func pageInfo(total, page, limit int64) *PageInfo {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &PageInfo{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// generateNumber builds a server-side document number like "PO-1A2B3C4D".
func generateNumber(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(raw[:8]))
}

// publishAudit emits an audit record for a mutation. Publish failures are
// logged and never fail the request.
func publishAudit(ctx context.Context, log logger.Logger, audit nats.AuditPublisher, entityName, entityID, action, actorID string) {
	if audit == nil {
		return
	}
	event := nats.AuditEvent{
		Entity:   entityName,
		EntityID: entityID,
		Action:   action,
		ActorID:  actorID,
		At:       time.Now(),
	}
	if err := audit.PublishAudit(ctx, event); err != nil {
		log.Warnf("failed to publish audit event for %s %s: %v", entityName, entityID, err)
	}
}
