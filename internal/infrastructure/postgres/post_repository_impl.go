package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
)

const postColumns = `id, author_id, author_name, title, subtitle, img_url, content, published_at`

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO posts (author_id, author_name, title, subtitle, img_url, content, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.AuthorID, p.AuthorName, p.Title, p.Subtitle, p.ImgURL, p.Content, p.PublishedAt)

	return mapError(row.Scan(&p.ID))
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)

	p, err := scanPost(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]entity.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE author_id = $1
		ORDER BY published_at DESC, id DESC
	`, authorID)
	if err != nil {
		return nil, mapError(err)
	}
	return collectPosts(rows)
}

func (r *PostRepository) ListAll(ctx context.Context) ([]entity.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY published_at DESC, id DESC
	`)
	if err != nil {
		return nil, mapError(err)
	}
	return collectPosts(rows)
}

func (r *PostRepository) Search(ctx context.Context, query string, limit int) ([]entity.Post, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE title ILIKE $1 OR subtitle ILIKE $1 OR content ILIKE $1
		ORDER BY published_at DESC, id DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return collectPosts(rows)
}

func scanPost(row pgx.Row) (entity.Post, error) {
	var p entity.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Subtitle, &p.ImgURL, &p.Content, &p.PublishedAt)
	return p, err
}

func collectPosts(rows pgx.Rows) ([]entity.Post, error) {
	defer rows.Close()

	res := make([]entity.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, mapError(err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return res, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ repository.PostRepository = (*PostRepository)(nil)
