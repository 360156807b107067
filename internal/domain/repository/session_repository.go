package repository

import (
	"context"
	"time"

	"github.com/oksasatya/coursenet/internal/domain/entity"
)

// SessionRepository stores server-side session records.
// Get returns ErrNotFound for unknown or expired sessions.
type SessionRepository interface {
	Save(ctx context.Context, s entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
