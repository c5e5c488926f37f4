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

const bankOrderCollection = "bank_orders"

type bankOrderDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber  string             `bson:"order_number"`
	BankName     string             `bson:"bank_name"`
	ProductName  string             `bson:"product_name"`
	CategoryID   primitive.ObjectID `bson:"category_id,omitempty"`
	Quantity     int                `bson:"quantity"`
	Amount       float64            `bson:"amount"`
	CustomerName string             `bson:"customer_name,omitempty"`
	Status       string             `bson:"status"`
	IsDeleted    bool               `bson:"is_deleted"`
	DeletedAt    *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *bankOrderDocument) toEntity() *entity.BankOrder {
	return &entity.BankOrder{
		ID:           d.ID,
		OrderNumber:  d.OrderNumber,
		BankName:     d.BankName,
		ProductName:  d.ProductName,
		CategoryID:   d.CategoryID,
		Quantity:     d.Quantity,
		Amount:       d.Amount,
		CustomerName: d.CustomerName,
		Status:       d.Status,
		IsDeleted:    d.IsDeleted,
		DeletedAt:    d.DeletedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type BankOrderRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewBankOrderRepository(db *mongo.Database, log logger.Logger) *BankOrderRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := db.Collection(bankOrderCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_number", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", bankOrderCollection, err)
	}

	return &BankOrderRepository{db: db, log: log.With("repository", "bank_order")}
}

func (r *BankOrderRepository) Create(ctx context.Context, order *entity.BankOrder) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &bankOrderDocument{
		ID:           primitive.NewObjectID(),
		OrderNumber:  order.OrderNumber,
		BankName:     order.BankName,
		ProductName:  order.ProductName,
		CategoryID:   order.CategoryID,
		Quantity:     order.Quantity,
		Amount:       order.Amount,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		IsDeleted:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.Collection(bankOrderCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "order_number_1") {
			return primitive.NilObjectID, repository.ErrDuplicateNumber
		}
		r.log.Errorf("failed to insert bank order: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create bank order: %w", err)
	}
	return doc.ID, nil
}

func (r *BankOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.BankOrder, error) {
	var doc bankOrderDocument
	err := r.db.Collection(bankOrderCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank order by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *BankOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.BankOrder, error) {
	var doc bankOrderDocument
	err := r.db.Collection(bankOrderCollection).FindOne(ctx, notDeleted(bson.M{"order_number": orderNumber})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank order by number: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *BankOrderRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.BankOrder, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(bankOrderCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bank orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bankOrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bank order list: %w", err)
	}

	orders := make([]*entity.BankOrder, len(docs))
	for i := range docs {
		orders[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(bankOrderCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bank orders: %w", err)
	}
	return orders, total, nil
}

func (r *BankOrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.BankOrderPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.BankName != nil {
		set["bank_name"] = *patch.BankName
	}
	if patch.ProductName != nil {
		set["product_name"] = *patch.ProductName
	}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	if patch.CustomerName != nil {
		set["customer_name"] = *patch.CustomerName
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	result, err := r.db.Collection(bankOrderCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		r.log.Errorf("failed to update bank order %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update bank order: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BankOrderRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(bankOrderCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete bank order: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
