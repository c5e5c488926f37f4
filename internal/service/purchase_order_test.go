package service

import (
	"context"
	"strings"
	"testing"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPurchaseOrderService(repo *MockPurchaseOrderRepository, vendors *MockVendorRepository) *PurchaseOrderService {
	return NewPurchaseOrderService(repo, vendors, nil, &logger.NoOpLogger{})
}

func TestPurchaseOrderService_Create_ComputesTotal(t *testing.T) {
	repo := new(MockPurchaseOrderRepository)
	vendors := new(MockVendorRepository)
	svc := newPurchaseOrderService(repo, vendors)
	ctx := context.Background()

	vendorID := primitive.NewObjectID()
	poID := primitive.NewObjectID()
	vendors.On("GetByID", ctx, vendorID).Return(&entity.Vendor{ID: vendorID, Name: "Acme"}, nil)
	repo.On("GetByPONumber", ctx, "PO-2024-001").Return(nil, repository.ErrNotFound)

	var created *entity.PurchaseOrder
	repo.On("Create", ctx, mock.AnythingOfType("*entity.PurchaseOrder")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.PurchaseOrder) }).
		Return(poID, nil)
	repo.On("GetByID", ctx, poID).Return(&entity.PurchaseOrder{ID: poID}, nil)

	_, err := svc.Create(ctx, "actor", CreatePurchaseOrderInput{
		PONumber: "PO-2024-001",
		VendorID: vendorID.Hex(),
		Items: []entity.PurchaseOrderItem{
			{ProductName: "Card reader", Quantity: 3, UnitPrice: 120.50},
			{ProductName: "POS terminal", Quantity: 2, UnitPrice: 499.99},
		},
	})

	assert.NoError(t, err)
	assert.InDelta(t, 3*120.50+2*499.99, created.TotalAmount, 0.001)
	assert.Equal(t, entity.PurchaseOrderDraft, created.Status)
	repo.AssertExpectations(t)
}

func TestPurchaseOrderService_Create_ExplicitNumberMustBeUnique(t *testing.T) {
	repo := new(MockPurchaseOrderRepository)
	vendors := new(MockVendorRepository)
	svc := newPurchaseOrderService(repo, vendors)
	ctx := context.Background()

	vendorID := primitive.NewObjectID()
	vendors.On("GetByID", ctx, vendorID).Return(&entity.Vendor{ID: vendorID}, nil)
	repo.On("GetByPONumber", ctx, "PO-2024-001").Return(&entity.PurchaseOrder{
		ID:       primitive.NewObjectID(),
		PONumber: "PO-2024-001",
	}, nil)

	_, err := svc.Create(ctx, "actor", CreatePurchaseOrderInput{
		PONumber: "PO-2024-001",
		VendorID: vendorID.Hex(),
		Items:    []entity.PurchaseOrderItem{{ProductName: "Card reader", Quantity: 1, UnitPrice: 10}},
	})

	assert.ErrorIs(t, err, repository.ErrDuplicateNumber)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Create_GeneratesNumberWhenBlank(t *testing.T) {
	repo := new(MockPurchaseOrderRepository)
	vendors := new(MockVendorRepository)
	svc := newPurchaseOrderService(repo, vendors)
	ctx := context.Background()

	vendorID := primitive.NewObjectID()
	poID := primitive.NewObjectID()
	vendors.On("GetByID", ctx, vendorID).Return(&entity.Vendor{ID: vendorID}, nil)

	var created *entity.PurchaseOrder
	repo.On("Create", ctx, mock.AnythingOfType("*entity.PurchaseOrder")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.PurchaseOrder) }).
		Return(poID, nil)
	repo.On("GetByID", ctx, poID).Return(&entity.PurchaseOrder{ID: poID}, nil)

	_, err := svc.Create(ctx, "actor", CreatePurchaseOrderInput{
		VendorID: vendorID.Hex(),
		Items:    []entity.PurchaseOrderItem{{ProductName: "Card reader", Quantity: 1, UnitPrice: 10}},
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.PONumber, "PO-"))
	repo.AssertNotCalled(t, "GetByPONumber", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Create_UnknownVendor(t *testing.T) {
	repo := new(MockPurchaseOrderRepository)
	vendors := new(MockVendorRepository)
	svc := newPurchaseOrderService(repo, vendors)
	ctx := context.Background()

	vendorID := primitive.NewObjectID()
	vendors.On("GetByID", ctx, vendorID).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(ctx, "actor", CreatePurchaseOrderInput{
		VendorID: vendorID.Hex(),
		Items:    []entity.PurchaseOrderItem{{ProductName: "Card reader", Quantity: 1, UnitPrice: 10}},
	})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPurchaseOrderService_Create_RequiresItems(t *testing.T) {
	svc := newPurchaseOrderService(new(MockPurchaseOrderRepository), new(MockVendorRepository))

	_, err := svc.Create(context.Background(), "actor", CreatePurchaseOrderInput{
		VendorID: primitive.NewObjectID().Hex(),
	})

	assert.ErrorIs(t, err, ErrNoItems)
}

func TestPurchaseOrderService_Update_RecomputesTotalFromItems(t *testing.T) {
	repo := new(MockPurchaseOrderRepository)
	vendors := new(MockVendorRepository)
	svc := newPurchaseOrderService(repo, vendors)
	ctx := context.Background()

	poID := primitive.NewObjectID()
	var patch repository.PurchaseOrderPatch
	repo.On("Update", ctx, poID, mock.AnythingOfType("repository.PurchaseOrderPatch")).
		Run(func(args mock.Arguments) { patch = args.Get(2).(repository.PurchaseOrderPatch) }).
		Return(nil)
	repo.On("GetByID", ctx, poID).Return(&entity.PurchaseOrder{ID: poID}, nil)

	_, err := svc.Update(ctx, "actor", poID.Hex(), UpdatePurchaseOrderInput{
		Items: []entity.PurchaseOrderItem{{ProductName: "Card reader", Quantity: 4, UnitPrice: 25}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, patch.TotalAmount)
	assert.InDelta(t, 100.0, *patch.TotalAmount, 0.001)
}
