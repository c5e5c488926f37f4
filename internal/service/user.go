package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	repo   repository.UserRepository
	tokens SessionStore
	audit  nats.AuditPublisher
	log    logger.Logger
}

func NewUserService(repo repository.UserRepository, tokens SessionStore, audit nats.AuditPublisher, log logger.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, audit: audit, log: log.With("service", "user")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

func (s *UserService) Create(ctx context.Context, actorID string, in CreateUserInput) (*entity.User, error) {
	if in.Role == "" {
		in.Role = entity.RoleStaff
	}
	if !entity.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	email := normalizeEmail(in.Email)

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, repository.ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, &entity.User{
		Name:     in.Name,
		Email:    email,
		Password: hash,
		Role:     in.Role,
		Phone:    in.Phone,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("user created: %s (%s)", id.Hex(), created.Email)
	publishAudit(ctx, s.log, s.audit, "user", id.Hex(), "created", actorID)
	return created, nil
}

func (s *UserService) List(ctx context.Context, page, limit int64, role string) ([]*entity.User, *PageInfo, error) {
	page, limit, skip := normalizePaging(page, limit)

	filter := map[string]interface{}{}
	if role != "" {
		filter["role"] = role
	}

	users, total, err := s.repo.List(ctx, skip, limit, filter)
	if err != nil {
		return nil, nil, err
	}
	return users, pageInfo(total, page, limit), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *UserService) Update(ctx context.Context, actorID, id string, patch repository.UserPatch) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if patch.Role != nil && !entity.ValidRole(*patch.Role) {
		return nil, ErrInvalidRole
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
		existing, err := s.repo.GetByEmail(ctx, email)
		if err == nil && existing.ID != oid {
			return nil, repository.ErrDuplicateEmail
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

	publishAudit(ctx, s.log, s.audit, "user", id, "updated", actorID)
	return updated, nil
}

// Delete soft-deletes the user and kills any active session so the
// account stops working immediately, not at access-token expiry.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if err := s.repo.SoftDelete(ctx, oid); err != nil {
		return err
	}
	if err := s.tokens.Invalidate(ctx, id); err != nil {
		s.log.Warnf("failed to invalidate refresh token for deleted user %s: %v", id, err)
	}
	s.log.Infof("user soft-deleted: %s", id)
	publishAudit(ctx, s.log, s.audit, "user", id, "deleted", actorID)
	return nil
}
