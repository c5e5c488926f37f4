package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BankOrderPending    = "pending"
	BankOrderProcessing = "processing"
	BankOrderShipped    = "shipped"
	BankOrderDelivered  = "delivered"
	BankOrderCancelled  = "cancelled"
)

func ValidBankOrderStatus(status string) bool {
	switch status {
	case BankOrderPending, BankOrderProcessing, BankOrderShipped,
		BankOrderDelivered, BankOrderCancelled:
		return true
	}
	return false
}

// BankOrder is a bank-sponsored product order placed for an end customer.
// OrderNumber is unique among non-deleted orders.
type BankOrder struct {
	ID           primitive.ObjectID
	OrderNumber  string
	BankName     string
	ProductName  string
	CategoryID   primitive.ObjectID
	Quantity     int
	Amount       float64
	CustomerName string
	Status       string

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
