package repository

import (
	"context"

	"github.com/oksasatya/coursenet/internal/domain/entity"
)

// PostRepository defines the persistence operations for posts.
// List operations return newest posts first.
type PostRepository interface {
	// Create inserts p and fills its ID. Returns ErrForeignKey when the author does not exist.
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]entity.Post, error)
	ListAll(ctx context.Context) ([]entity.Post, error)
	// Search matches query against title, subtitle and content.
	Search(ctx context.Context, query string, limit int) ([]entity.Post, error)
}
