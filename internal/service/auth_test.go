package service

import (
	"context"
	"testing"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/config"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/token"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:        "test-secret",
	AccessTokenTTL:   15 * time.Minute,
	RefreshTokenTTL:  720 * time.Hour,
	MaxLoginAttempts: 5,
	LockDuration:     15 * time.Minute,
	ResetTokenTTL:    time.Hour,
}

func newAuthService(users *MockUserRepository, tokens *MockSessionStore, mailer *MockMailer) *AuthService {
	return NewAuthService(users, tokens, mailer, nil, testAuthConfig, &logger.NoOpLogger{})
}

func testUser(password string) *entity.User {
	hash, _ := HashPassword(password)
	return &entity.User{
		ID:       primitive.NewObjectID(),
		Name:     "Test User",
		Email:    "user@example.com",
		Password: hash,
		Role:     entity.RoleStaff,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockSessionStore)
	svc := newAuthService(users, tokens, new(MockMailer))
	ctx := context.Background()

	user := testUser("correct-password")
	users.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
	users.On("RecordLogin", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
	users.On("SaveRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)
	tokens.On("Save", ctx, user.ID.Hex(), mock.AnythingOfType("string"), testAuthConfig.RefreshTokenTTL).Return(nil)

	got, pair, err := svc.Login(ctx, "User@Example.com ", "correct-password")

	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := token.Parse(testAuthConfig.JWTSecret, pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, token.TypeAccess, claims.TokenType)
	users.AssertExpectations(t)
}

func TestAuthService_Login_WrongPasswordIncrementsAttempts(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, new(MockSessionStore), new(MockMailer))
	ctx := context.Background()

	user := testUser("correct-password")
	user.LoginAttempts = 2
	users.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
	users.On("RecordFailedLogin", ctx, user.ID, 3, (*time.Time)(nil)).Return(nil)

	_, _, err := svc.Login(ctx, "user@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertExpectations(t)
}

func TestAuthService_Login_FifthFailureEngagesLock(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, new(MockSessionStore), new(MockMailer))
	ctx := context.Background()

	now := time.Now()
	svc.now = func() time.Time { return now }

	user := testUser("correct-password")
	user.LoginAttempts = 4
	users.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
	users.On("RecordFailedLogin", ctx, user.ID, 5, mock.MatchedBy(func(lockUntil *time.Time) bool {
		return lockUntil != nil && lockUntil.Equal(now.Add(testAuthConfig.LockDuration))
	})).Return(nil)

	_, _, err := svc.Login(ctx, "user@example.com", "wrong")

	assert.ErrorIs(t, err, ErrAccountLocked)
	users.AssertExpectations(t)
}

func TestAuthService_Login_LockedFailsFastWithoutIncrement(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, new(MockSessionStore), new(MockMailer))
	ctx := context.Background()

	lockUntil := time.Now().Add(10 * time.Minute)
	user := testUser("correct-password")
	user.LoginAttempts = 5
	user.LockUntil = &lockUntil
	users.On("GetByEmail", ctx, "user@example.com").Return(user, nil)

	// Even the correct password is rejected while the lock holds.
	_, _, err := svc.Login(ctx, "user@example.com", "correct-password")

	assert.ErrorIs(t, err, ErrAccountLocked)
	users.AssertNotCalled(t, "RecordFailedLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "RecordLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_ExpiredLockAllowsLogin(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockSessionStore)
	svc := newAuthService(users, tokens, new(MockMailer))
	ctx := context.Background()

	expired := time.Now().Add(-time.Minute)
	user := testUser("correct-password")
	user.LoginAttempts = 5
	user.LockUntil = &expired
	users.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
	users.On("RecordLogin", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
	users.On("SaveRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)
	tokens.On("Save", ctx, user.ID.Hex(), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

	_, pair, err := svc.Login(ctx, "user@example.com", "correct-password")

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, new(MockSessionStore), new(MockMailer))
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(ctx, "ghost@example.com", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesSession(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockSessionStore)
	svc := newAuthService(users, tokens, new(MockMailer))
	ctx := context.Background()

	user := testUser("pw-not-used")
	refresh, err := token.Generate(testAuthConfig.JWTSecret, user.ID.Hex(), user.Role, token.TypeRefresh, time.Hour)
	assert.NoError(t, err)

	tokens.On("Get", ctx, user.ID.Hex()).Return(refresh, nil)
	users.On("GetByID", ctx, user.ID).Return(user, nil)
	users.On("SaveRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)
	tokens.On("Save", ctx, user.ID.Hex(), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

	pair, err := svc.Refresh(ctx, refresh)

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc := newAuthService(new(MockUserRepository), new(MockSessionStore), new(MockMailer))

	access, err := token.Generate(testAuthConfig.JWTSecret, primitive.NewObjectID().Hex(), entity.RoleStaff, token.TypeAccess, time.Hour)
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)

	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_Refresh_RejectsMismatchedStore(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockSessionStore)
	svc := newAuthService(users, tokens, new(MockMailer))
	ctx := context.Background()

	userID := primitive.NewObjectID()
	refresh, err := token.Generate(testAuthConfig.JWTSecret, userID.Hex(), entity.RoleStaff, token.TypeRefresh, time.Hour)
	assert.NoError(t, err)

	// The store holds a different (rotated) token.
	tokens.On("Get", ctx, userID.Hex()).Return("some-other-token", nil)

	_, err = svc.Refresh(ctx, refresh)

	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := newAuthService(users, new(MockSessionStore), mailer)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

	err := svc.ForgotPassword(ctx, "ghost@example.com")

	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ForgotPassword_IssuesTokenAndMails(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := newAuthService(users, new(MockSessionStore), mailer)
	ctx := context.Background()

	now := time.Now()
	svc.now = func() time.Time { return now }

	user := testUser("pw")
	users.On("GetByEmail", ctx, user.Email).Return(user, nil)

	var issued string
	users.On("SaveResetToken", ctx, user.ID, mock.AnythingOfType("string"), now.Add(testAuthConfig.ResetTokenTTL)).
		Run(func(args mock.Arguments) { issued = args.String(2) }).Return(nil)
	mailer.On("SendPasswordReset", user.Email, user.Name, mock.AnythingOfType("string")).Return(nil)

	err := svc.ForgotPassword(ctx, user.Email)

	assert.NoError(t, err)
	assert.NotEmpty(t, issued)
	mailer.AssertCalled(t, "SendPasswordReset", user.Email, user.Name, issued)
}

func TestAuthService_ResetPassword_ConsumesToken(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockSessionStore)
	svc := newAuthService(users, tokens, new(MockMailer))
	ctx := context.Background()

	user := testUser("old-password")
	users.On("GetByResetToken", ctx, "reset-token", mock.AnythingOfType("time.Time")).Return(user, nil)
	users.On("UpdatePassword", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)
	users.On("ClearResetToken", ctx, user.ID).Return(nil)
	tokens.On("Invalidate", ctx, user.ID.Hex()).Return(nil)

	err := svc.ResetPassword(ctx, "reset-token", "new-password-123")

	assert.NoError(t, err)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, new(MockSessionStore), new(MockMailer))
	ctx := context.Background()

	users.On("GetByResetToken", ctx, "stale-token", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrNotFound)

	err := svc.ResetPassword(ctx, "stale-token", "new-password-123")

	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, new(MockSessionStore), new(MockMailer))
	ctx := context.Background()

	user := testUser("current-password")
	users.On("GetByID", ctx, user.ID).Return(user, nil)

	err := svc.ChangePassword(ctx, user.ID.Hex(), "not-the-password", "new-password-123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
