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

const vendorCollection = "vendors"

type vendorDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	Address   string             `bson:"address,omitempty"`
	Status    string             `bson:"status"`
	IsDeleted bool               `bson:"is_deleted"`
	DeletedAt *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *vendorDocument) toEntity() *entity.Vendor {
	return &entity.Vendor{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		Status:    d.Status,
		IsDeleted: d.IsDeleted,
		DeletedAt: d.DeletedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type VendorRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewVendorRepository(db *mongo.Database, log logger.Logger) *VendorRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := db.Collection(vendorCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", vendorCollection, err)
	}

	return &VendorRepository{db: db, log: log.With("repository", "vendor")}
}

func (r *VendorRepository) Create(ctx context.Context, vendor *entity.Vendor) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &vendorDocument{
		ID:        primitive.NewObjectID(),
		Name:      vendor.Name,
		Email:     vendor.Email,
		Phone:     vendor.Phone,
		Address:   vendor.Address,
		Status:    vendor.Status,
		IsDeleted: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.Collection(vendorCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "name_1") {
			return primitive.NilObjectID, repository.ErrDuplicateName
		}
		r.log.Errorf("failed to insert vendor: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create vendor: %w", err)
	}
	return doc.ID, nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Vendor, error) {
	var doc vendorDocument
	err := r.db.Collection(vendorCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vendor by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *VendorRepository) GetByName(ctx context.Context, name string) (*entity.Vendor, error) {
	var doc vendorDocument
	err := r.db.Collection(vendorCollection).FindOne(ctx, notDeleted(bson.M{"name": name})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vendor by name: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *VendorRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Vendor, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(vendorCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []vendorDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vendor list: %w", err)
	}

	vendors := make([]*entity.Vendor, len(docs))
	for i := range docs {
		vendors[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(vendorCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return vendors, total, nil
}

func (r *VendorRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.VendorPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
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

	result, err := r.db.Collection(vendorCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err, "name_1") {
			return repository.ErrDuplicateName
		}
		r.log.Errorf("failed to update vendor %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VendorRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(vendorCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete vendor: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
