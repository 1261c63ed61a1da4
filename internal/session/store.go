package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store keeps login sessions server-side so a token can be revoked and
// expires on its own, instead of trusting client-cached profile data.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given time-to-live.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create registers a new session for a user and returns its ID.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+sessionID, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Validate checks that a session is live and returns the user it belongs to.
// The TTL is refreshed on each successful validation (sliding expiry).
func (s *Store) Validate(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	s.client.Expire(ctx, keyPrefix+sessionID, s.ttl)
	return userID, nil
}

// Delete removes a session, invalidating its tokens immediately.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
