package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockBankOrderRepository struct{ mock.Mock }

func (m *MockBankOrderRepository) Create(ctx context.Context, order *entity.BankOrder) (primitive.ObjectID, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockBankOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.BankOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BankOrder), args.Error(1)
}
func (m *MockBankOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.BankOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BankOrder), args.Error(1)
}
func (m *MockBankOrderRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.BankOrder, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.BankOrder), args.Get(1).(int64), args.Error(2)
}
func (m *MockBankOrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.BankOrderPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockBankOrderRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Create(ctx context.Context, courier *entity.Courier) (primitive.ObjectID, error) {
	args := m.Called(ctx, courier)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockCourierRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Courier), args.Error(1)
}
func (m *MockCourierRepository) GetByType(ctx context.Context, courierType string) (*entity.Courier, error) {
	args := m.Called(ctx, courierType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Courier), args.Error(1)
}
func (m *MockCourierRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.Courier, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Courier), args.Get(1).(int64), args.Error(2)
}
func (m *MockCourierRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.CourierPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockCourierRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChallanRepository struct{ mock.Mock }

func (m *MockChallanRepository) Create(ctx context.Context, challan *entity.DeliveryChallan) (primitive.ObjectID, error) {
	args := m.Called(ctx, challan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockChallanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.DeliveryChallan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DeliveryChallan), args.Error(1)
}
func (m *MockChallanRepository) GetByChallanNumber(ctx context.Context, challanNumber string) (*entity.DeliveryChallan, error) {
	args := m.Called(ctx, challanNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DeliveryChallan), args.Error(1)
}
func (m *MockChallanRepository) List(ctx context.Context, skip, limit int64, filter map[string]interface{}) ([]*entity.DeliveryChallan, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.DeliveryChallan), args.Get(1).(int64), args.Error(2)
}
func (m *MockChallanRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.ChallanPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockChallanRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newChallanService(repo *MockChallanRepository, orders *MockBankOrderRepository, couriers *MockCourierRepository) *ChallanService {
	return NewChallanService(repo, orders, couriers, nil, &logger.NoOpLogger{})
}

func TestChallanService_Create_GeneratesNumberAndValidatesRefs(t *testing.T) {
	repo := new(MockChallanRepository)
	orders := new(MockBankOrderRepository)
	couriers := new(MockCourierRepository)
	svc := newChallanService(repo, orders, couriers)
	ctx := context.Background()

	orderID := primitive.NewObjectID()
	courierID := primitive.NewObjectID()
	challanID := primitive.NewObjectID()
	orders.On("GetByID", ctx, orderID).Return(&entity.BankOrder{ID: orderID}, nil)
	couriers.On("GetByID", ctx, courierID).Return(&entity.Courier{ID: courierID}, nil)

	var created *entity.DeliveryChallan
	repo.On("Create", ctx, mock.AnythingOfType("*entity.DeliveryChallan")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.DeliveryChallan) }).
		Return(challanID, nil)
	repo.On("GetByID", ctx, challanID).Return(&entity.DeliveryChallan{ID: challanID}, nil)

	_, err := svc.Create(ctx, "actor", CreateChallanInput{
		BankOrderID: orderID.Hex(),
		CourierID:   courierID.Hex(),
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ChallanNumber, "CH-"))
	assert.Equal(t, entity.ChallanCreated, created.Status)
}

func TestChallanService_Create_UnknownBankOrder(t *testing.T) {
	repo := new(MockChallanRepository)
	orders := new(MockBankOrderRepository)
	couriers := new(MockCourierRepository)
	svc := newChallanService(repo, orders, couriers)
	ctx := context.Background()

	orderID := primitive.NewObjectID()
	orders.On("GetByID", ctx, orderID).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(ctx, "actor", CreateChallanInput{
		BankOrderID: orderID.Hex(),
		CourierID:   primitive.NewObjectID().Hex(),
	})

	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChallanService_Update_DispatchStampsTimestamp(t *testing.T) {
	repo := new(MockChallanRepository)
	svc := newChallanService(repo, new(MockBankOrderRepository), new(MockCourierRepository))
	ctx := context.Background()

	challanID := primitive.NewObjectID()
	repo.On("GetByID", ctx, challanID).Return(&entity.DeliveryChallan{
		ID:     challanID,
		Status: entity.ChallanCreated,
	}, nil)

	var patch repository.ChallanPatch
	repo.On("Update", ctx, challanID, mock.AnythingOfType("repository.ChallanPatch")).
		Run(func(args mock.Arguments) { patch = args.Get(2).(repository.ChallanPatch) }).
		Return(nil)

	status := entity.ChallanDispatched
	_, err := svc.Update(ctx, "actor", challanID.Hex(), UpdateChallanInput{Status: &status})

	assert.NoError(t, err)
	assert.NotNil(t, patch.DispatchedAt)
	assert.WithinDuration(t, time.Now(), *patch.DispatchedAt, time.Second)
	assert.Nil(t, patch.DeliveredAt)
}

func TestChallanService_Update_DispatchTimestampWrittenOnce(t *testing.T) {
	repo := new(MockChallanRepository)
	svc := newChallanService(repo, new(MockBankOrderRepository), new(MockCourierRepository))
	ctx := context.Background()

	dispatched := time.Now().Add(-time.Hour)
	challanID := primitive.NewObjectID()
	repo.On("GetByID", ctx, challanID).Return(&entity.DeliveryChallan{
		ID:           challanID,
		Status:       entity.ChallanDispatched,
		DispatchedAt: &dispatched,
	}, nil)

	var patch repository.ChallanPatch
	repo.On("Update", ctx, challanID, mock.AnythingOfType("repository.ChallanPatch")).
		Run(func(args mock.Arguments) { patch = args.Get(2).(repository.ChallanPatch) }).
		Return(nil)

	status := entity.ChallanDispatched
	_, err := svc.Update(ctx, "actor", challanID.Hex(), UpdateChallanInput{Status: &status})

	assert.NoError(t, err)
	assert.Nil(t, patch.DispatchedAt)
}

func TestChallanService_Update_InvalidStatus(t *testing.T) {
	svc := newChallanService(new(MockChallanRepository), new(MockBankOrderRepository), new(MockCourierRepository))

	status := "lost"
	_, err := svc.Update(context.Background(), "actor", primitive.NewObjectID().Hex(), UpdateChallanInput{Status: &status})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}
