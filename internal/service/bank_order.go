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

type BankOrderService struct {
	repo       repository.BankOrderRepository
	categories repository.CategoryRepository
	audit      nats.AuditPublisher
	log        logger.Logger
}

func NewBankOrderService(repo repository.BankOrderRepository, categories repository.CategoryRepository, audit nats.AuditPublisher, log logger.Logger) *BankOrderService {
	return &BankOrderService{repo: repo, categories: categories, audit: audit, log: log.With("service", "bank_order")}
}

type CreateBankOrderInput struct {
	OrderNumber  string
	BankName     string
	ProductName  string
	CategoryID   string
	Quantity     int
	Amount       float64
	CustomerName string
	Status       string
}

func (s *BankOrderService) Create(ctx context.Context, actorID string, in CreateBankOrderInput) (*entity.BankOrder, error) {
	if in.Status == "" {
		in.Status = entity.BankOrderPending
	}
	if !entity.ValidBankOrderStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	categoryID, err := primitive.ObjectIDFromHex(in.CategoryID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	if in.OrderNumber == "" {
		in.OrderNumber = generateNumber("ORD")
	} else {
		_, err := s.repo.GetByOrderNumber(ctx, in.OrderNumber)
		if err == nil {
			return nil, repository.ErrDuplicateNumber
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	id, err := s.repo.Create(ctx, &entity.BankOrder{
		OrderNumber:  in.OrderNumber,
		BankName:     in.BankName,
		ProductName:  in.ProductName,
		CategoryID:   categoryID,
		Quantity:     in.Quantity,
		Amount:       in.Amount,
		CustomerName: in.CustomerName,
		Status:       in.Status,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("bank order created: %s (%s)", id.Hex(), created.OrderNumber)
	publishAudit(ctx, s.log, s.audit, "bank_order", id.Hex(), "created", actorID)
	return created, nil
}

func (s *BankOrderService) List(ctx context.Context, page, limit int64, status, bankName string) ([]*entity.BankOrder, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}
	if bankName != "" {
		filter["bank_name"] = bankName
	}

	orders, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return orders, pageInfo(total, page, limit), nil
}

func (s *BankOrderService) Get(ctx context.Context, id string) (*entity.BankOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

type UpdateBankOrderInput struct {
	BankName     *string
	ProductName  *string
	CategoryID   *string
	Quantity     *int
	Amount       *float64
	CustomerName *string
	Status       *string
}

func (s *BankOrderService) Update(ctx context.Context, actorID, id string, in UpdateBankOrderInput) (*entity.BankOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if in.Status != nil && !entity.ValidBankOrderStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	patch := repository.BankOrderPatch{
		BankName:     in.BankName,
		ProductName:  in.ProductName,
		Quantity:     in.Quantity,
		Amount:       in.Amount,
		CustomerName: in.CustomerName,
		Status:       in.Status,
	}
	if in.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*in.CategoryID)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return nil, err
		}
		patch.CategoryID = &categoryID
	}

	if err := s.repo.Update(ctx, oid, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	publishAudit(ctx, s.log, s.audit, "bank_order", id, "updated", actorID)
	return updated, nil
}

func (s *BankOrderService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	s.log.Infof("bank order soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "bank_order", id, "deleted", actorID)
	return nil
}
