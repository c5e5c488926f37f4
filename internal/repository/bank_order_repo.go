package repository

import (
	"context"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BankOrderPatch struct {
	BankName     *string
	ProductName  *string
	CategoryID   *primitive.ObjectID
	Quantity     *int
	Amount       *float64
	CustomerName *string
	Status       *string
}

type BankOrderRepository interface {
	Create(ctx context.Context, order *entity.BankOrder) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.BankOrder, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.BankOrder, error)
	List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.BankOrder, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch BankOrderPatch) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
