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

type VendorService struct {
	repo  repository.VendorRepository
	audit nats.AuditPublisher
	log   logger.Logger
}

func NewVendorService(repo repository.VendorRepository, audit nats.AuditPublisher, log logger.Logger) *VendorService {
	return &VendorService{repo: repo, audit: audit, log: log.With("service", "vendor")}
}

type CreateVendorInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Status  string
}

func (s *VendorService) Create(ctx context.Context, actorID string, in CreateVendorInput) (*entity.Vendor, error) {
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !entity.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	_, err := s.repo.GetByName(ctx, in.Name)
	if err == nil {
		return nil, repository.ErrDuplicateName
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := s.repo.Create(ctx, &entity.Vendor{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Status:  in.Status,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("vendor created: %s", id.Hex())
	publishAudit(ctx, s.log, s.audit, "vendor", id.Hex(), "created", actorID)
	return created, nil
}

func (s *VendorService) List(ctx context.Context, page, limit int64, status string) ([]*entity.Vendor, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}

	vendors, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return vendors, pageInfo(total, page, limit), nil
}

func (s *VendorService) Get(ctx context.Context, id string) (*entity.Vendor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *VendorService) Update(ctx context.Context, actorID, id string, patch repository.VendorPatch) (*entity.Vendor, error) {
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

	publishAudit(ctx, s.log, s.audit, "vendor", id, "updated", actorID)
	return updated, nil
}

func (s *VendorService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	s.log.Infof("vendor soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "vendor", id, "deleted", actorID)
	return nil
}
