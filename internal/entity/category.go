package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

// Category groups bank-sponsored products. Name is unique among
// non-deleted categories.
type Category struct {
	ID          primitive.ObjectID
	Name        string
	Description string
	Status      string

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
