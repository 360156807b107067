package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
)

type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]entity.Session),
		now:      time.Now,
	}
}

func (r *SessionRepository) Save(ctx context.Context, s entity.Session, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.ExpiresAt = r.now().Add(ttl)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !r.now().Before(s.ExpiresAt) {
		delete(r.sessions, id)
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
