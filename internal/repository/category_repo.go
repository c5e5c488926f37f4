package repository

import (
	"context"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryPatch carries only the fields a partial update supplies.
type CategoryPatch struct {
	Name        *string
	Description *string
	Status      *string
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Category, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch CategoryPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
