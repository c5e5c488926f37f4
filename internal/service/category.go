package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryService struct {
	repo  repository.CategoryRepository
	audit nats.AuditPublisher
	log   logger.Logger
}

func NewCategoryService(repo repository.CategoryRepository, audit nats.AuditPublisher, log logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, audit: audit, log: log.With("service", "category")}
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Status      string
}

func (s *CategoryService) Create(ctx context.Context, actorID string, in CreateCategoryInput) (*entity.Category, error) {
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !entity.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	// Check-then-act: the partial unique index backstops the race.
	_, err := s.repo.GetByName(ctx, in.Name)
	if err == nil {
		return nil, repository.ErrDuplicateName
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := s.repo.Create(ctx, &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created category: %w", err)
	}

	s.log.Infof("category created: %s", id.Hex())
	publishAudit(ctx, s.log, s.audit, "category", id.Hex(), "created", actorID)
	return created, nil
}

func (s *CategoryService) List(ctx context.Context, page, limit int64, status string) ([]*entity.Category, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}

	categories, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return categories, pageInfo(total, page, limit), nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *CategoryService) Update(ctx context.Context, actorID, id string, patch repository.CategoryPatch) (*entity.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if patch.Status != nil && !entity.ValidStatus(*patch.Status) {
		return nil, ErrInvalidStatus
	}

	if patch.Name != nil {
		existing, err := s.repo.GetByName(ctx, *patch.Name)
		if err == nil && existing.ID != oid {
			return nil, repository.ErrDuplicateName
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, oid, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	publishAudit(ctx, s.log, s.audit, "category", id, "updated", actorID)
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	s.log.Infof("category soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "category", id, "deleted", actorID)
	return nil
}
