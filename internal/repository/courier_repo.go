package repository

import (
	"context"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourierPatch struct {
	Name        *string
	CourierType *string
	Phone       *string
	Address     *string
	Status      *string
}

type CourierRepository interface {
	Create(ctx context.Context, courier *entity.Courier) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Courier, error)
	GetByType(ctx context.Context, courierType string) (*entity.Courier, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Courier, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch CourierPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
