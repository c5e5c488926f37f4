package repository

import (
	"context"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
	Phone *string
}

// UserRepository extends the common lifecycle contract with the
// authentication bookkeeping mutated only by the login flow.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	RecordFailedLogin(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error
	RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SaveRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error

	SaveResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
}
