package service

import (
	"context"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) (primitive.ObjectID, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}
func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}
func (m *MockCategoryRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Category, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Category), args.Get(1).(int64), args.Error(2)
}
func (m *MockCategoryRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.CategoryPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockCategoryRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVendorRepository struct{ mock.Mock }

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) (primitive.ObjectID, error) {
	args := m.Called(ctx, vendor)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockVendorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vendor), args.Error(1)
}
func (m *MockVendorRepository) GetByName(ctx context.Context, name string) (*entity.Vendor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vendor), args.Error(1)
}
func (m *MockVendorRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Vendor, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Vendor), args.Get(1).(int64), args.Error(2)
}
func (m *MockVendorRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.VendorPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockVendorRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPurchaseOrderRepository struct{ mock.Mock }

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) (primitive.ObjectID, error) {
	args := m.Called(ctx, po)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockPurchaseOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseOrder), args.Error(1)
}
func (m *MockPurchaseOrderRepository) GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	args := m.Called(ctx, poNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseOrder), args.Error(1)
}
func (m *MockPurchaseOrderRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.PurchaseOrder, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}
func (m *MockPurchaseOrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.PurchaseOrderPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockPurchaseOrderRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.User, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockUserRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepository) RecordFailedLogin(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error {
	args := m.Called(ctx, id, attempts, lockUntil)
	return args.Error(0)
}
func (m *MockUserRepository) RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockUserRepository) SaveRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}
func (m *MockUserRepository) SaveResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}
func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, ttl)
	return args.Error(0)
}
func (m *MockSessionStore) Get(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockSessionStore) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendPasswordReset(toEmail, toName, token string) error {
	args := m.Called(toEmail, toName, token)
	return args.Error(0)
}

type MockAuditPublisher struct{ mock.Mock }

func (m *MockAuditPublisher) PublishAudit(ctx context.Context, event nats.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
