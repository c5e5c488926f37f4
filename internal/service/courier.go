package service

import (
	"context"
	"errors"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourierService struct {
	repo  repository.CourierRepository
	audit nats.AuditPublisher
	log   logger.Logger
}

func NewCourierService(repo repository.CourierRepository, audit nats.AuditPublisher, log logger.Logger) *CourierService {
	return &CourierService{repo: repo, audit: audit, log: log.With("service", "courier")}
}

type CreateCourierInput struct {
	Name        string
	CourierType string
	Phone       string
	Address     string
	Status      string
}

func (s *CourierService) Create(ctx context.Context, actorID string, in CreateCourierInput) (*entity.Courier, error) {
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !entity.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	_, err := s.repo.GetByType(ctx, in.CourierType)
	if err == nil {
		return nil, repository.ErrDuplicateCourierType
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := s.repo.Create(ctx, &entity.Courier{
		Name:        in.Name,
		CourierType: in.CourierType,
		Phone:       in.Phone,
		Address:     in.Address,
		Status:      in.Status,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("courier created: %s", id.Hex())
	publishAudit(ctx, s.log, s.audit, "courier", id.Hex(), "created", actorID)
	return created, nil
}

func (s *CourierService) List(ctx context.Context, page, limit int64, status string) ([]*entity.Courier, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}

	couriers, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return couriers, pageInfo(total, page, limit), nil
}

func (s *CourierService) Get(ctx context.Context, id string) (*entity.Courier, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *CourierService) Update(ctx context.Context, actorID, id string, patch repository.CourierPatch) (*entity.Courier, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if patch.Status != nil && !entity.ValidStatus(*patch.Status) {
		return nil, ErrInvalidStatus
	}

	if patch.CourierType != nil {
		existing, err := s.repo.GetByType(ctx, *patch.CourierType)
		if err == nil && existing.ID != oid {
			return nil, repository.ErrDuplicateCourierType
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

	publishAudit(ctx, s.log, s.audit, "courier", id, "updated", actorID)
	return updated, nil
}

func (s *CourierService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	s.log.Infof("courier soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "courier", id, "deleted", actorID)
	return nil
}
