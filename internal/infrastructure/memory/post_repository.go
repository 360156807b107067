package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
)

// PostRepository keeps posts in insertion order. When users is set, Create
// enforces that the author exists like the posts.author_id foreign key does.
type PostRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  []entity.Post
	users  *UserRepository
}

func NewPostRepository(users *UserRepository) *PostRepository {
	return &PostRepository{users: users}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.users != nil && !r.users.Exists(p.AuthorID) {
		return repository.ErrForeignKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.posts = append(r.posts, *p)
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.posts {
		if r.posts[i].ID == id {
			p := r.posts[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]entity.Post, error) {
	return r.filter(ctx, 0, func(p entity.Post) bool { return p.AuthorID == authorID })
}

func (r *PostRepository) ListAll(ctx context.Context) ([]entity.Post, error) {
	return r.filter(ctx, 0, func(entity.Post) bool { return true })
}

func (r *PostRepository) Search(ctx context.Context, query string, limit int) ([]entity.Post, error) {
	q := strings.ToLower(query)
	return r.filter(ctx, limit, func(p entity.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Subtitle), q) ||
			strings.Contains(strings.ToLower(p.Content), q)
	})
}

// filter returns matching posts ordered by published_at DESC, id DESC.
func (r *PostRepository) filter(ctx context.Context, limit int, keep func(entity.Post) bool) ([]entity.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	res := make([]entity.Post, 0)
	for _, p := range r.posts {
		if keep(p) {
			res = append(res, p)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].PublishedAt.Equal(res[j].PublishedAt) {
			return res[i].PublishedAt.After(res[j].PublishedAt)
		}
		return res[i].ID > res[j].ID
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
