package repository

import (
	"context"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChallanPatch struct {
	CourierID    *primitive.ObjectID
	Status       *string
	Remarks      *string
	DispatchedAt *time.Time
	DeliveredAt  *time.Time
}

type ChallanRepository interface {
	Create(ctx context.Context, challan *entity.DeliveryChallan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.DeliveryChallan, error)
	GetByChallanNumber(ctx context.Context, challanNumber string) (*entity.DeliveryChallan, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.DeliveryChallan, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch ChallanPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
