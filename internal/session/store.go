// Package session holds the server side of the login state: an opaque id in
// Redis mapping to the authenticated user, plus the signed cookie carrying
// that id. Deleting the Redis key is what logs a user out; the cookie alone
// proves nothing.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type Store struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewStore(client *redisv9.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Create allocates a fresh session for userID and returns its opaque id.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}
	key := s.key(sid)
	if err := s.client.Set(ctx, key, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set session failed: %w", err)
	}
	return sid, nil
}

// Get resolves a session id to the user it belongs to. The second return
// value is false when the session does not exist or has expired.
func (s *Store) Get(ctx context.Context, sid string) (uint, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Result()
	if err == redisv9.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get session failed: %w", err)
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value %q: %w", raw, err)
	}
	return uint(userID), true, nil
}

// Delete invalidates a session. Deleting a session that is already gone is
// not an error, so logout stays idempotent.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func (s *Store) key(sid string) string {
	return "session:" + sid
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id failed: %w", err)
	}
	return hex.EncodeToString(b), nil
}
