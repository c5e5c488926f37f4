package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChallanCreated    = "created"
	ChallanDispatched = "dispatched"
	ChallanDelivered  = "delivered"
)

func ValidChallanStatus(status string) bool {
	switch status {
	case ChallanCreated, ChallanDispatched, ChallanDelivered:
		return true
	}
	return false
}

// DeliveryChallan links a bank order to the courier carrying it.
// ChallanNumber is unique among non-deleted challans.
type DeliveryChallan struct {
	ID            primitive.ObjectID
	ChallanNumber string
	BankOrderID   primitive.ObjectID
	CourierID     primitive.ObjectID
	Status        string
	Remarks       string
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
