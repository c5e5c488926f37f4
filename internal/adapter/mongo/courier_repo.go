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

const courierCollection = "couriers"

type courierDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	CourierType string             `bson:"courier_type"`
	Phone       string             `bson:"phone,omitempty"`
	Address     string             `bson:"address,omitempty"`
	Status      string             `bson:"status"`
	IsDeleted   bool               `bson:"is_deleted"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *courierDocument) toEntity() *entity.Courier {
	return &entity.Courier{
		ID:          d.ID,
		Name:        d.Name,
		CourierType: d.CourierType,
		Phone:       d.Phone,
		Address:     d.Address,
		Status:      d.Status,
		IsDeleted:   d.IsDeleted,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type CourierRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewCourierRepository(db *mongo.Database, log logger.Logger) *CourierRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := db.Collection(courierCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "courier_type", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", courierCollection, err)
	}

	return &CourierRepository{db: db, log: log.With("repository", "courier")}
}

func (r *CourierRepository) Create(ctx context.Context, courier *entity.Courier) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &courierDocument{
		ID:          primitive.NewObjectID(),
		Name:        courier.Name,
		CourierType: courier.CourierType,
		Phone:       courier.Phone,
		Address:     courier.Address,
		Status:      courier.Status,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.Collection(courierCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "courier_type_1") {
			return primitive.NilObjectID, repository.ErrDuplicateCourierType
		}
		r.log.Errorf("failed to insert courier: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create courier: %w", err)
	}
	return doc.ID, nil
}

func (r *CourierRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Courier, error) {
	var doc courierDocument
	err := r.db.Collection(courierCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get courier by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CourierRepository) GetByType(ctx context.Context, courierType string) (*entity.Courier, error) {
	var doc courierDocument
	err := r.db.Collection(courierCollection).FindOne(ctx, notDeleted(bson.M{"courier_type": courierType})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get courier by type: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CourierRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Courier, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(courierCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list couriers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []courierDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode courier list: %w", err)
	}

	couriers := make([]*entity.Courier, len(docs))
	for i := range docs {
		couriers[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(courierCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count couriers: %w", err)
	}
	return couriers, total, nil
}

func (r *CourierRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.CourierPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.CourierType != nil {
		set["courier_type"] = *patch.CourierType
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	result, err := r.db.Collection(courierCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err, "courier_type_1") {
			return repository.ErrDuplicateCourierType
		}
		r.log.Errorf("failed to update courier %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update courier: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourierRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(courierCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete courier: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
