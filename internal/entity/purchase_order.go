package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PurchaseOrderDraft     = "draft"
	PurchaseOrderIssued    = "issued"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

func ValidPurchaseOrderStatus(status string) bool {
	switch status {
	case PurchaseOrderDraft, PurchaseOrderIssued, PurchaseOrderReceived,
		PurchaseOrderCancelled:
		return true
	}
	return false
}

type PurchaseOrderItem struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// PurchaseOrder is issued to a vendor. PONumber is unique among
// non-deleted purchase orders; TotalAmount is derived from the items.
type PurchaseOrder struct {
	ID          primitive.ObjectID
	PONumber    string
	VendorID    primitive.ObjectID
	Items       []PurchaseOrderItem
	TotalAmount float64
	Status      string

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total sums the line items.
func (p *PurchaseOrder) Total() float64 {
	var sum float64
	for _, it := range p.Items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}
