package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mm-grybel/CS50-Study/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	CreateSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (userID uint, err error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore records live login sessions in Redis. Deleting the record
// invalidates the session immediately even if its token has not expired.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// CreateSession stores a session record with TTL matching the token lifetime.
func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	payload, err := json.Marshal(map[string]interface{}{"user_id": userID})
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

// GetSession returns the user a live session belongs to.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (uint, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil || data == nil {
		return 0, fmt.Errorf("session not found")
	}

	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("unmarshal session data: %w", err)
	}

	uid, ok := record["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user_id in session data")
	}
	return uint(uid), nil
}

// DeleteSession removes a session record. Deleting a missing session is a
// no-op, which makes logout idempotent.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
