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

var ErrNoItems = errors.New("purchase order requires at least one item")

type PurchaseOrderService struct {
	repo    repository.PurchaseOrderRepository
	vendors repository.VendorRepository
	audit   nats.AuditPublisher
	log     logger.Logger
}

func NewPurchaseOrderService(repo repository.PurchaseOrderRepository, vendors repository.VendorRepository, audit nats.AuditPublisher, log logger.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{repo: repo, vendors: vendors, audit: audit, log: log.With("service", "purchase_order")}
}

type CreatePurchaseOrderInput struct {
	PONumber string
	VendorID string
	Items    []entity.PurchaseOrderItem
	Status   string
}

func (s *PurchaseOrderService) Create(ctx context.Context, actorID string, in CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if in.Status == "" {
		in.Status = entity.PurchaseOrderDraft
	}
	if !entity.ValidPurchaseOrderStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}

	vendorID, err := primitive.ObjectIDFromHex(in.VendorID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	if in.PONumber == "" {
		in.PONumber = generateNumber("PO")
	} else {
		_, err := s.repo.GetByPONumber(ctx, in.PONumber)
		if err == nil {
			return nil, repository.ErrDuplicateNumber
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	po := &entity.PurchaseOrder{
		PONumber: in.PONumber,
		VendorID: vendorID,
		Items:    in.Items,
		Status:   in.Status,
	}
	po.TotalAmount = po.Total()

	id, err := s.repo.Create(ctx, po)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("purchase order created: %s (%s)", id.Hex(), created.PONumber)
	publishAudit(ctx, s.log, s.audit, "purchase_order", id.Hex(), "created", actorID)
	return created, nil
}

func (s *PurchaseOrderService) List(ctx context.Context, page, limit int64, status, vendorID string) ([]*entity.PurchaseOrder, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}
	if vendorID != "" {
		oid, err := primitive.ObjectIDFromHex(vendorID)
		if err != nil {
			return nil, nil, repository.ErrInvalidID
		}
		filter["vendor_id"] = oid
	}

	orders, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return orders, pageInfo(total, page, limit), nil
}

func (s *PurchaseOrderService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

type UpdatePurchaseOrderInput struct {
	VendorID *string
	Items    []entity.PurchaseOrderItem
	Status   *string
}

func (s *PurchaseOrderService) Update(ctx context.Context, actorID, id string, in UpdatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if in.Status != nil && !entity.ValidPurchaseOrderStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	patch := repository.PurchaseOrderPatch{Status: in.Status}
	if in.VendorID != nil {
		vendorID, err := primitive.ObjectIDFromHex(*in.VendorID)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
			return nil, err
		}
		patch.VendorID = &vendorID
	}
	if in.Items != nil {
		if len(in.Items) == 0 {
			return nil, ErrNoItems
		}
		patch.Items = in.Items
		total := (&entity.PurchaseOrder{Items: in.Items}).Total()
		patch.TotalAmount = &total
	}

	if err := s.repo.Update(ctx, oid, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	publishAudit(ctx, s.log, s.audit, "purchase_order", id, "updated", actorID)
	return updated, nil
}

func (s *PurchaseOrderService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	s.log.Infof("purchase order soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "purchase_order", id, "deleted", actorID)
	return nil
}
