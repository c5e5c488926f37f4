package repository

import (
	"context"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PurchaseOrderPatch struct {
	VendorID    *primitive.ObjectID
	Items       []entity.PurchaseOrderItem
	TotalAmount *float64
	Status      *string
}

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.PurchaseOrder, error)
	GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.PurchaseOrder, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch PurchaseOrderPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
