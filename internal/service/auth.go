package service

import (
	"context"
	"errors"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/email"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/config"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/token"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService owns the login lockout state machine, session tokens and
// the password reset flow.
type AuthService struct {
	users  repository.UserRepository
	tokens SessionStore
	mailer email.Sender
	audit  nats.AuditPublisher
	cfg    config.AuthConfig
	log    logger.Logger

	now func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens SessionStore, mailer email.Sender, audit nats.AuditPublisher, cfg config.AuthConfig, log logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		audit:  audit,
		cfg:    cfg,
		log:    log.With("service", "auth"),
		now:    time.Now,
	}
}

// Login authenticates by email and password. A locked account fails fast
// without touching the attempt counter; a wrong password increments it
// and engages the lock once the configured threshold is reached.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*entity.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	now := s.now()
	if user.Locked(now) {
		return nil, nil, ErrAccountLocked
	}

	if !CheckPassword(user.Password, password) {
		attempts := user.LoginAttempts + 1
		var lockUntil *time.Time
		if attempts >= s.cfg.MaxLoginAttempts {
			until := now.Add(s.cfg.LockDuration)
			lockUntil = &until
		}
		if err := s.users.RecordFailedLogin(ctx, user.ID, attempts, lockUntil); err != nil {
			s.log.Errorf("failed to record failed login for %s: %v", user.ID.Hex(), err)
		}
		if lockUntil != nil {
			s.log.Warnf("account locked after %d failed attempts: %s", attempts, user.ID.Hex())
			publishAudit(ctx, s.log, s.audit, "user", user.ID.Hex(), "locked", user.ID.Hex())
			return nil, nil, ErrAccountLocked
		}
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Infof("user logged in: %s", user.ID.Hex())
	publishAudit(ctx, s.log, s.audit, "user", user.ID.Hex(), "login", user.ID.Hex())
	return user, pair, nil
}

// Refresh rotates the session. The token must parse, carry the refresh
// type and match the copy Redis holds for the user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := token.Parse(s.cfg.JWTSecret, refreshToken)
	if err != nil || claims.TokenType != token.TypeRefresh {
		return nil, ErrInvalidRefresh
	}

	stored, err := s.tokens.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != refreshToken {
		return nil, ErrInvalidRefresh
	}

	oid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.Invalidate(ctx, userID); err != nil {
		return err
	}
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		if err := s.users.SaveRefreshToken(ctx, oid, ""); err != nil {
			s.log.Warnf("failed to clear refresh token for %s: %v", userID, err)
		}
	}
	s.log.Infof("user logged out: %s", userID)
	return nil
}

// ForgotPassword issues a reset token and mails it. The response is the
// same whether the email exists or not.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	resetToken := uuid.NewString()
	expires := s.now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SaveResetToken(ctx, user.ID, resetToken, expires); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetToken); err != nil {
		s.log.Errorf("failed to deliver reset email to %s: %v", user.Email, err)
	}
	publishAudit(ctx, s.log, s.audit, "user", user.ID.Hex(), "password_reset_requested", user.ID.Hex())
	return nil
}

// ResetPassword redeems a reset token. The token is consumed on success
// and every active session is invalidated.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	user, err := s.users.GetByResetToken(ctx, resetToken, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}
	if err := s.tokens.Invalidate(ctx, user.ID.Hex()); err != nil {
		s.log.Warnf("failed to invalidate sessions for %s: %v", user.ID.Hex(), err)
	}

	s.log.Infof("password reset completed for %s", user.ID.Hex())
	publishAudit(ctx, s.log, s.audit, "user", user.ID.Hex(), "password_reset", user.ID.Hex())
	return nil
}

// ChangePassword verifies the current password before re-hashing and
// invalidates active sessions.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrInvalidID
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if !CheckPassword(user.Password, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, oid, hash); err != nil {
		return err
	}
	if err := s.tokens.Invalidate(ctx, userID); err != nil {
		s.log.Warnf("failed to invalidate sessions for %s: %v", userID, err)
	}

	publishAudit(ctx, s.log, s.audit, "user", userID, "password_changed", userID)
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*TokenPair, error) {
	access, err := token.Generate(s.cfg.JWTSecret, user.ID.Hex(), user.Role, token.TypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := token.Generate(s.cfg.JWTSecret, user.ID.Hex(), user.Role, token.TypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(ctx, user.ID.Hex(), refresh, s.cfg.RefreshTokenTTL); err != nil {
		return nil, err
	}
	if err := s.users.SaveRefreshToken(ctx, user.ID, refresh); err != nil {
		s.log.Warnf("failed to persist refresh token copy for %s: %v", user.ID.Hex(), err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
