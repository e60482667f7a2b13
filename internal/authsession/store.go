// Package authsession tracks transport-layer authenticated sessions in
// Redis so logout paths (user-initiated, sweep-forced, or the global
// escape hatch) can invalidate them.
package authsession

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "authsess"

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	Create(ctx context.Context, employeeID uuid.UUID, ttl time.Duration) (string, error)
	DeleteForEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) Store {
	return &store{rdb: rdb}
}

func sessionKey(employeeID uuid.UUID, sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, employeeID, sessionID)
}

func (s *store) Create(ctx context.Context, employeeID uuid.UUID, ttl time.Duration) (string, error) {
	sessionID := uuid.New().String()
	key := sessionKey(employeeID, sessionID)
	if err := s.rdb.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *store) DeleteForEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	return s.deleteByPattern(ctx, fmt.Sprintf("%s:%s:*", keyPrefix, employeeID))
}

func (s *store) DeleteAll(ctx context.Context) (int64, error) {
	return s.deleteByPattern(ctx, keyPrefix+":*")
}

func (s *store) deleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var deleted int64
	var cursor uint64

	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := s.rdb.Del(ctx, keys...).Result()
			deleted += n
			if err != nil {
				return deleted, err
			}
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
