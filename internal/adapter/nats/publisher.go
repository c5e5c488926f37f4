package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// AuditEvent is published on every create, update and soft delete.
type AuditEvent struct {
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Action   string    `json:"action"`
	ActorID  string    `json:"actor_id,omitempty"`
	At       time.Time `json:"at"`
}

type AuditPublisher interface {
	PublishAudit(ctx context.Context, event AuditEvent) error
}

type natsAuditPublisher struct {
	conn *nats.Conn
}

func NewAuditPublisher(conn *nats.Conn) (AuditPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &natsAuditPublisher{conn: conn}, nil
}

func (p *natsAuditPublisher) PublishAudit(ctx context.Context, event AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	subject := fmt.Sprintf("backoffice.audit.%s.%s", event.Entity, event.Action)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish audit event to %s: %w", subject, err)
	}
	return nil
}
