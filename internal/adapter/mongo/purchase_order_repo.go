package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const purchaseOrderCollection = "purchase_orders"

type purchaseOrderItemDocument struct {
	ProductName string  `bson:"product_name"`
	Quantity    int     `bson:"quantity"`
	UnitPrice   float64 `bson:"unit_price"`
}

type purchaseOrderDocument struct {
	ID          primitive.ObjectID          `bson:"_id,omitempty"`
	PONumber    string                      `bson:"po_number"`
	VendorID    primitive.ObjectID          `bson:"vendor_id"`
	Items       []purchaseOrderItemDocument `bson:"items"`
	TotalAmount float64                     `bson:"total_amount"`
	Status      string                      `bson:"status"`
	IsDeleted   bool                        `bson:"is_deleted"`
	DeletedAt   *time.Time                  `bson:"deleted_at,omitempty"`
	CreatedAt   time.Time                   `bson:"created_at"`
	UpdatedAt   time.Time                   `bson:"updated_at"`
}

func toPurchaseOrderItemDocuments(items []entity.PurchaseOrderItem) []purchaseOrderItemDocument {
	docs := make([]purchaseOrderItemDocument, len(items))
	for i, it := range items {
		docs[i] = purchaseOrderItemDocument{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return docs
}

func (d *purchaseOrderDocument) toEntity() *entity.PurchaseOrder {
	items := make([]entity.PurchaseOrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = entity.PurchaseOrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return &entity.PurchaseOrder{
		ID:          d.ID,
		PONumber:    d.PONumber,
		VendorID:    d.VendorID,
		Items:       items,
		TotalAmount: d.TotalAmount,
		Status:      d.Status,
		IsDeleted:   d.IsDeleted,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type PurchaseOrderRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewPurchaseOrderRepository(db *mongo.Database, log logger.Logger) *PurchaseOrderRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := db.Collection(purchaseOrderCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "po_number", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", purchaseOrderCollection, err)
	}

	return &PurchaseOrderRepository{db: db, log: log.With("repository", "purchase_order")}
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &purchaseOrderDocument{
		ID:          primitive.NewObjectID(),
		PONumber:    po.PONumber,
		VendorID:    po.VendorID,
		Items:       toPurchaseOrderItemDocuments(po.Items),
		TotalAmount: po.TotalAmount,
		Status:      po.Status,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.Collection(purchaseOrderCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "po_number_1") {
			return primitive.NilObjectID, repository.ErrDuplicateNumber
		}
		r.log.Errorf("failed to insert purchase order: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create purchase order: %w", err)
	}
	return doc.ID, nil
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.PurchaseOrder, error) {
	var doc purchaseOrderDocument
	err := r.db.Collection(purchaseOrderCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *PurchaseOrderRepository) GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	var doc purchaseOrderDocument
	err := r.db.Collection(purchaseOrderCollection).FindOne(ctx, notDeleted(bson.M{"po_number": poNumber})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order by number: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *PurchaseOrderRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.PurchaseOrder, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(purchaseOrderCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []purchaseOrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode purchase order list: %w", err)
	}

	orders := make([]*entity.PurchaseOrder, len(docs))
	for i := range docs {
		orders[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(purchaseOrderCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}
	return orders, total, nil
}

func (r *PurchaseOrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.PurchaseOrderPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.VendorID != nil {
		set["vendor_id"] = *patch.VendorID
	}
	if patch.Items != nil {
		set["items"] = toPurchaseOrderItemDocuments(patch.Items)
	}
	if patch.TotalAmount != nil {
		set["total_amount"] = *patch.TotalAmount
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	result, err := r.db.Collection(purchaseOrderCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		r.log.Errorf("failed to update purchase order %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update purchase order: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(purchaseOrderCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete purchase order: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
