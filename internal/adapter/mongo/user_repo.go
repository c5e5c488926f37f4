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

const userCollection = "users"

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Role     string             `bson:"role"`
	Phone    string             `bson:"phone,omitempty"`

	LoginAttempts        int        `bson:"login_attempts"`
	LockUntil            *time.Time `bson:"lock_until,omitempty"`
	LastLogin            *time.Time `bson:"last_login,omitempty"`
	PasswordResetToken   string     `bson:"password_reset_token,omitempty"`
	PasswordResetExpires *time.Time `bson:"password_reset_expires,omitempty"`
	RefreshToken         string     `bson:"refresh_token,omitempty"`

	IsDeleted bool       `bson:"is_deleted"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:                   d.ID,
		Name:                 d.Name,
		Email:                d.Email,
		Password:             d.Password,
		Role:                 d.Role,
		Phone:                d.Phone,
		LoginAttempts:        d.LoginAttempts,
		LockUntil:            d.LockUntil,
		LastLogin:            d.LastLogin,
		PasswordResetToken:   d.PasswordResetToken,
		PasswordResetExpires: d.PasswordResetExpires,
		RefreshToken:         d.RefreshToken,
		IsDeleted:            d.IsDeleted,
		DeletedAt:            d.DeletedAt,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type UserRepository struct {
	db  *mongo.Database
	log logger.Logger
}

func NewUserRepository(db *mongo.Database, log logger.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		log.Warnf("failed to ensure index for %s collection: %v", userCollection, err)
	}

	return &UserRepository{db: db, log: log.With("repository", "user")}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	now := time.Now()
	doc := &userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Role:      user.Role,
		Phone:     user.Phone,
		IsDeleted: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.Collection(userCollection).InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err, "email_1") {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
		r.log.Errorf("failed to insert user: %v", err)
		return primitive.NilObjectID, fmt.Errorf("failed to create user: %w", err)
	}
	return doc.ID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var doc userDocument
	err := r.db.Collection(userCollection).FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.db.Collection(userCollection).FindOne(ctx, notDeleted(bson.M{"email": email})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.User, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	mongoFilter := notDeleted(bson.M(filter))

	cursor, err := r.db.Collection(userCollection).Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode user list: %w", err)
	}

	users := make([]*entity.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toEntity()
	}

	total, err := r.db.Collection(userCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.UserPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}

	result, err := r.db.Collection(userCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err, "email_1") {
			return repository.ErrDuplicateEmail
		}
		r.log.Errorf("failed to update user %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.db.Collection(userCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	result, err := r.db.Collection(userCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"password": passwordHash, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RecordFailedLogin stores the post-increment attempt counter and, once
// the threshold is crossed, the lockout deadline.
func (r *UserRepository) RecordFailedLogin(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error {
	set := bson.M{"login_attempts": attempts, "updated_at": time.Now()}
	if lockUntil != nil {
		set["lock_until"] = *lockUntil
	}
	result, err := r.db.Collection(userCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to record failed login: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RecordLogin resets the lockout state after a successful authentication.
func (r *UserRepository) RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{
		"$set":   bson.M{"login_attempts": 0, "last_login": at, "updated_at": at},
		"$unset": bson.M{"lock_until": ""},
	}
	result, err := r.db.Collection(userCollection).UpdateOne(ctx, notDeleted(bson.M{"_id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SaveRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	update := bson.M{"$set": bson.M{"refresh_token": token, "updated_at": time.Now()}}
	if token == "" {
		update = bson.M{
			"$set":   bson.M{"updated_at": time.Now()},
			"$unset": bson.M{"refresh_token": ""},
		}
	}
	result, err := r.db.Collection(userCollection).UpdateOne(ctx, notDeleted(bson.M{"_id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SaveResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	result, err := r.db.Collection(userCollection).UpdateOne(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{
			"password_reset_token":   token,
			"password_reset_expires": expires,
			"updated_at":             time.Now(),
		}})
	if err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetByResetToken only matches tokens whose expiry is strictly in the
// future; expired or consumed tokens look like a missing record.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	filter := notDeleted(bson.M{
		"password_reset_token":   token,
		"password_reset_expires": bson.M{"$gt": now},
	})
	var doc userDocument
	err := r.db.Collection(userCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return doc.toEntity(), nil
}

// ClearResetToken removes the token fields entirely so a stale value can
// never match again.
func (r *UserRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set":   bson.M{"updated_at": time.Now()},
		"$unset": bson.M{"password_reset_token": "", "password_reset_expires": ""},
	}
	result, err := r.db.Collection(userCollection).UpdateOne(ctx, notDeleted(bson.M{"_id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
