// Package session issues and tracks guest session tokens. Tokens live
// in redis with a sliding TTL; the cookie they ride in acts as a
// backup, so a session-store restart does not orphan a guest cart
// within the cookie's lifetime.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store validates and refreshes guest session tokens.
type Store interface {
	// NewToken mints a fresh guest session token and registers it.
	NewToken(ctx context.Context) (string, error)
	// Touch refreshes the TTL of a known token. Unknown tokens are
	// re-registered rather than rejected: the cookie is the backup
	// record of the session.
	Touch(ctx context.Context, token string) error
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisStore(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &RedisStore{client: rdb, ttl: ttl, log: log}, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) NewToken(ctx context.Context) (string, error) {
	token := generateToken()
	if err := s.client.Set(ctx, sessionKey(token), "1", s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Touch(ctx context.Context, token string) error {
	return s.client.Set(ctx, sessionKey(token), "1", s.ttl).Err()
}

func sessionKey(token string) string {
	return "guest_session:" + token
}

func generateToken() string {
	suffix, err := nanorand.Gen(8)
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewString() + "-" + suffix
}

// MemoryStore keeps sessions in process memory; used when redis is
// disabled (single instance, tests).
type MemoryStore struct {
	ttl time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore { return &MemoryStore{ttl: ttl} }

func (s *MemoryStore) NewToken(ctx context.Context) (string, error) { return generateToken(), nil }

func (s *MemoryStore) Touch(ctx context.Context, token string) error { return nil }

func (s *MemoryStore) Close() error { return nil }
