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

const categoryCollection = "categories"

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	IsDeleted   bool               `bson:"is_deleted"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *categoryDocument) toEntity() *entity.Category {
	return &entity.Category{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Status:      d.Status,
		IsDeleted:   d.IsDeleted,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type CategoryRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewCategoryRepository(db *mongo.Database, log logger.Logger) *CategoryRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	// Unique among non-deleted documents only, so a name can be reused
	// after its record is soft-deleted.
	_, err := db.Collection(categoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", categoryCollection, err)
	}

	return &CategoryRepository{db: db, log: log.With("repository", "category")}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &categoryDocument{
		ID:          primitive.NewObjectID(),
		Name:        category.Name,
		Description: category.Description,
		Status:      category.Status,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.Collection(categoryCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "name_1") {
			return primitive.NilObjectID, repository.ErrDuplicateName
		}
		r.log.Errorf("failed to insert category: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create category: %w", err)
	}
	return doc.ID, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	var doc categoryDocument
	err := r.db.Collection(categoryCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var doc categoryDocument
	err := r.db.Collection(categoryCollection).FindOne(ctx, notDeleted(bson.M{"name": name})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CategoryRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Category, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(categoryCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode category list: %w", err)
	}

	categories := make([]*entity.Category, len(docs))
	for i := range docs {
		categories[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(categoryCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return categories, total, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.CategoryPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	result, err := r.db.Collection(categoryCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err, "name_1") {
			return repository.ErrDuplicateName
		}
		r.log.Errorf("failed to update category %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(categoryCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete category: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
