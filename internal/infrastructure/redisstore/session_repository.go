// Package redisstore keeps login sessions in Redis hashes.
package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
)

const keyPrefix = "session:"

func sessionKey(id string) string {
	return keyPrefix + id
}

type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Save(ctx context.Context, s entity.Session, ttl time.Duration) error {
	key := sessionKey(s.ID)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    s.UserID,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	key := sessionKey(id)
	data, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	uid, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	s := &entity.Session{ID: id, UserID: uid}
	if created, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		s.CreatedAt = created
	}
	if ttl, err := r.rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		s.ExpiresAt = time.Now().Add(ttl)
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
