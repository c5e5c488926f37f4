package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Courier is a delivery partner. CourierType is unique among non-deleted
// couriers: one record per integration (e.g. "tcs", "leopards", "inhouse").
type Courier struct {
	ID          primitive.ObjectID
	Name        string
	CourierType string
	Phone       string
	Address     string
	Status      string

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
