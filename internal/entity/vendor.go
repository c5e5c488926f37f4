package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor supplies products against purchase orders. Name is unique among
// non-deleted vendors.
type Vendor struct {
	ID      primitive.ObjectID
	Name    string
	Email   string
	Phone   string
	Address string
	Status  string

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
