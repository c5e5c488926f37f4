package service

import (
	"context"
	"testing"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCategoryService(repo *MockCategoryRepository) *CategoryService {
	return NewCategoryService(repo, nil, &logger.NoOpLogger{})
}

func TestCategoryService_Create_Success(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	id := primitive.NewObjectID()
	repo.On("GetByName", ctx, "Electronics").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(id, nil)
	repo.On("GetByID", ctx, id).Return(&entity.Category{
		ID:     id,
		Name:   "Electronics",
		Status: entity.StatusActive,
	}, nil)

	created, err := svc.Create(ctx, "actor", CreateCategoryInput{Name: "Electronics"})

	assert.NoError(t, err)
	assert.Equal(t, "Electronics", created.Name)
	// A blank status defaults to active.
	assert.Equal(t, entity.StatusActive, created.Status)
	repo.AssertExpectations(t)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	repo.On("GetByName", ctx, "Electronics").Return(&entity.Category{
		ID:   primitive.NewObjectID(),
		Name: "Electronics",
	}, nil)

	_, err := svc.Create(ctx, "actor", CreateCategoryInput{Name: "Electronics"})

	assert.ErrorIs(t, err, repository.ErrDuplicateName)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_InvalidStatus(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)

	_, err := svc.Create(context.Background(), "actor", CreateCategoryInput{
		Name:   "Electronics",
		Status: "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCategoryService_Get_InvalidID(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)

	_, err := svc.Get(context.Background(), "not-a-hex-id")

	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestCategoryService_List_PaginationDefaults(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	repo.On("List", ctx, int64(0), int64(10), map[string]interface{}{}).
		Return([]*entity.Category{}, int64(25), nil)

	_, page, err := svc.List(ctx, 0, 0, "")

	assert.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(1), page.Page)
	assert.Equal(t, int64(10), page.Limit)
	assert.Equal(t, int64(3), page.TotalPages)
}

func TestCategoryService_List_SkipOffset(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	repo.On("List", ctx, int64(10), int64(5), map[string]interface{}{"status": "active"}).
		Return([]*entity.Category{}, int64(11), nil)

	_, page, err := svc.List(ctx, 3, 5, "active")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), page.Page)
	assert.Equal(t, int64(3), page.TotalPages)
	repo.AssertExpectations(t)
}

func TestCategoryService_Update_NameConflict(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	id := primitive.NewObjectID()
	name := "Furniture"
	repo.On("GetByName", ctx, name).Return(&entity.Category{
		ID:   primitive.NewObjectID(), // a different document owns the name
		Name: name,
	}, nil)

	_, err := svc.Update(ctx, "actor", id.Hex(), repository.CategoryPatch{Name: &name})

	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestCategoryService_Update_SameDocumentKeepsName(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	id := primitive.NewObjectID()
	name := "Furniture"
	repo.On("GetByName", ctx, name).Return(&entity.Category{ID: id, Name: name}, nil)
	repo.On("Update", ctx, id, mock.AnythingOfType("repository.CategoryPatch")).Return(nil)
	repo.On("GetByID", ctx, id).Return(&entity.Category{ID: id, Name: name, Status: entity.StatusActive}, nil)

	updated, err := svc.Update(ctx, "actor", id.Hex(), repository.CategoryPatch{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := newCategoryService(repo)
	ctx := context.Background()

	id := primitive.NewObjectID()
	repo.On("SoftDelete", ctx, id).Return(repository.ErrNotFound)

	err := svc.Delete(ctx, "actor", id.Hex())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCategoryService_Delete_PublishesAudit(t *testing.T) {
	repo := new(MockCategoryRepository)
	audit := new(MockAuditPublisher)
	svc := NewCategoryService(repo, audit, &logger.NoOpLogger{})
	ctx := context.Background()

	id := primitive.NewObjectID()
	repo.On("SoftDelete", ctx, id).Return(nil)
	audit.On("PublishAudit", ctx, mock.MatchedBy(func(e nats.AuditEvent) bool {
		return e.Entity == "category" && e.Action == "deleted" && e.EntityID == id.Hex()
	})).Return(nil)

	err := svc.Delete(ctx, "actor", id.Hex())

	assert.NoError(t, err)
	audit.AssertExpectations(t)
}
