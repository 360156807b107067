package repository

import (
	"context"

	"github.com/oksasatya/coursenet/internal/domain/entity"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create inserts u and fills its ID and CreatedAt. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
