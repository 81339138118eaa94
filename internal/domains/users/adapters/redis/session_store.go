package redis

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	userports "github.com/galeria/marketplace-api/internal/domains/users/ports"
)

// SessionStore keeps bearer-token sessions in Redis with a TTL.
type SessionStore struct {
	client   *redis.Client
	sessionT time.Duration
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// NewSessionStore wires a Redis-backed session store. Caller owns client lifecycle.
func NewSessionStore(client *redis.Client, sessionTTL time.Duration) *SessionStore {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &SessionStore{client: client, sessionT: sessionTTL}
}

func sessionKey(token string) string { return "session:" + token }

// Save stores the token with the configured TTL.
func (s *SessionStore) Save(ctx context.Context, token string, userID int64) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" || userID <= 0 {
		return errors.New("token and user id are required")
	}
	return s.client.Set(ctx, sessionKey(token), userID, s.sessionT).Err()
}

// Lookup resolves a live token to the owning principal id.
func (s *SessionStore) Lookup(ctx context.Context, token string) (int64, error) {
	if err := s.ensureClient(); err != nil {
		return 0, err
	}
	value, err := s.client.Get(ctx, sessionKey(strings.TrimSpace(token))).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, userports.ErrSessionNotFound
		}
		return 0, err
	}
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, userports.ErrSessionNotFound
	}
	return userID, nil
}

// Delete removes a session by token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Del(ctx, sessionKey(strings.TrimSpace(token))).Err()
}

func (s *SessionStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
