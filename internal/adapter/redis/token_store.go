package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the active refresh token per user. Redis is the
// authority for session checks; the copy on the user document is audit
// state only.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	return s.client.Set(ctx, "refresh_token:"+userID, token, ttl).Err()
}

// Get returns an empty string when no token is stored; that is not an
// application error.
func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, "refresh_token:"+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *TokenStore) Invalidate(ctx context.Context, userID string) error {
	return s.client.Del(ctx, "refresh_token:"+userID).Err()
}
