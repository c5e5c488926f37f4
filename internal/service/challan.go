package service

import (
	"context"
	"errors"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChallanService struct {
	repo       repository.ChallanRepository
	bankOrders repository.BankOrderRepository
	couriers   repository.CourierRepository
	audit      nats.AuditPublisher
	log        logger.Logger
}

func NewChallanService(repo repository.ChallanRepository, bankOrders repository.BankOrderRepository, couriers repository.CourierRepository, audit nats.AuditPublisher, log logger.Logger) *ChallanService {
	return &ChallanService{repo: repo, bankOrders: bankOrders, couriers: couriers, audit: audit, log: log.With("service", "challan")}
}

type CreateChallanInput struct {
	ChallanNumber string
	BankOrderID   string
	CourierID     string
	Remarks       string
}

func (s *ChallanService) Create(ctx context.Context, actorID string, in CreateChallanInput) (*entity.DeliveryChallan, error) {
	bankOrderID, err := primitive.ObjectIDFromHex(in.BankOrderID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	courierID, err := primitive.ObjectIDFromHex(in.CourierID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if _, err := s.bankOrders.GetByID(ctx, bankOrderID); err != nil {
		return nil, err
	}
	if _, err := s.couriers.GetByID(ctx, courierID); err != nil {
		return nil, err
	}

	if in.ChallanNumber == "" {
		in.ChallanNumber = generateNumber("CH")
	} else {
		_, err := s.repo.GetByChallanNumber(ctx, in.ChallanNumber)
		if err == nil {
			return nil, repository.ErrDuplicateNumber
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	id, err := s.repo.Create(ctx, &entity.DeliveryChallan{
		ChallanNumber: in.ChallanNumber,
		BankOrderID:   bankOrderID,
		CourierID:     courierID,
		Status:        entity.ChallanCreated,
		Remarks:       in.Remarks,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("challan created: %s (%s)", id.Hex(), created.ChallanNumber)
	publishAudit(ctx, s.log, s.audit, "challan", id.Hex(), "created", actorID)
	return created, nil
}

func (s *ChallanService) List(ctx context.Context, page, limit int64, status, bankOrderID string) ([]*entity.DeliveryChallan, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}
	if bankOrderID != "" {
		oid, err := primitive.ObjectIDFromHex(bankOrderID)
		if err != nil {
			return nil, nil, repository.ErrInvalidID
		}
		filter["bank_order_id"] = oid
	}

	challans, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return challans, pageInfo(total, page, limit), nil
}

func (s *ChallanService) Get(ctx context.Context, id string) (*entity.DeliveryChallan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

type UpdateChallanInput struct {
	CourierID *string
	Status    *string
	Remarks   *string
}

// Update moves the challan through its lifecycle. Entering "dispatched"
// stamps DispatchedAt and "delivered" stamps DeliveredAt; the stamps are
// written once and kept on later updates.
func (s *ChallanService) Update(ctx context.Context, actorID, id string, in UpdateChallanInput) (*entity.DeliveryChallan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if in.Status != nil && !entity.ValidChallanStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	patch := repository.ChallanPatch{Status: in.Status, Remarks: in.Remarks}
	if in.CourierID != nil {
		courierID, err := primitive.ObjectIDFromHex(*in.CourierID)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		if _, err := s.couriers.GetByID(ctx, courierID); err != nil {
			return nil, err
		}
		patch.CourierID = &courierID
	}
	if in.Status != nil {
		now := time.Now()
		if *in.Status == entity.ChallanDispatched && current.DispatchedAt == nil {
			patch.DispatchedAt = &now
		}
		if *in.Status == entity.ChallanDelivered && current.DeliveredAt == nil {
			patch.DeliveredAt = &now
		}
	}

	if err := s.repo.Update(ctx, oid, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	publishAudit(ctx, s.log, s.audit, "challan", id, "updated", actorID)
	return updated, nil
}

func (s *ChallanService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	s.log.Infof("challan soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "challan", id, "deleted", actorID)
	return nil
}
