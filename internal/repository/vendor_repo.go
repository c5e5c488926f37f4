package repository

import (
	"context"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VendorPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Status  *string
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Vendor, error)
	GetByName(ctx context.Context, name string) (*entity.Vendor, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Vendor, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch VendorPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
