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

const challanCollection = "delivery_challans"

type challanDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ChallanNumber string             `bson:"challan_number"`
	BankOrderID   primitive.ObjectID `bson:"bank_order_id"`
	CourierID     primitive.ObjectID `bson:"courier_id"`
	Status        string             `bson:"status"`
	Remarks       string             `bson:"remarks,omitempty"`
	DispatchedAt  *time.Time         `bson:"dispatched_at,omitempty"`
	DeliveredAt   *time.Time         `bson:"delivered_at,omitempty"`
	IsDeleted     bool               `bson:"is_deleted"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *challanDocument) toEntity() *entity.DeliveryChallan {
	return &entity.DeliveryChallan{
		ID:            d.ID,
		ChallanNumber: d.ChallanNumber,
		BankOrderID:   d.BankOrderID,
		CourierID:     d.CourierID,
		Status:        d.Status,
		Remarks:       d.Remarks,
		DispatchedAt:  d.DispatchedAt,
		DeliveredAt:   d.DeliveredAt,
		IsDeleted:     d.IsDeleted,
		DeletedAt:     d.DeletedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type ChallanRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewChallanRepository(db *mongo.Database, log logger.Logger) *ChallanRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := db.Collection(challanCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "challan_number", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", challanCollection, err)
	}

	return &ChallanRepository{db: db, log: log.With("repository", "challan")}
}

func (r *ChallanRepository) Create(ctx context.Context, challan *entity.DeliveryChallan) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &challanDocument{
		ID:            primitive.NewObjectID(),
		ChallanNumber: challan.ChallanNumber,
		BankOrderID:   challan.BankOrderID,
		CourierID:     challan.CourierID,
		Status:        challan.Status,
		Remarks:       challan.Remarks,
		IsDeleted:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := r.db.Collection(challanCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "challan_number_1") {
			return primitive.NilObjectID, repository.ErrDuplicateNumber
		}
		r.log.Errorf("failed to insert challan: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create challan: %w", err)
	}
	return doc.ID, nil
}

func (r *ChallanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.DeliveryChallan, error) {
	var doc challanDocument
	err := r.db.Collection(challanCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challan by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *ChallanRepository) GetByChallanNumber(ctx context.Context, challanNumber string) (*entity.DeliveryChallan, error) {
	var doc challanDocument
	err := r.db.Collection(challanCollection).FindOne(ctx, notDeleted(bson.M{"challan_number": challanNumber})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challan by number: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *ChallanRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.DeliveryChallan, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(challanCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list challans: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []challanDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode challan list: %w", err)
	}

	challans := make([]*entity.DeliveryChallan, len(docs))
	for i := range docs {
		challans[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(challanCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count challans: %w", err)
	}
	return challans, total, nil
}

func (r *ChallanRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.ChallanPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.CourierID != nil {
		set["courier_id"] = *patch.CourierID
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Remarks != nil {
		set["remarks"] = *patch.Remarks
	}
	if patch.DispatchedAt != nil {
		set["dispatched_at"] = *patch.DispatchedAt
	}
	if patch.DeliveredAt != nil {
		set["delivered_at"] = *patch.DeliveredAt
	}

	result, err := r.db.Collection(challanCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		r.log.Errorf("failed to update challan %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update challan: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ChallanRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(challanCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete challan: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
