package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
)

var postCols = []string{"id", "author_id", "author_name", "title", "subtitle", "img_url", "content", "published_at"}

func TestPostRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(int64(1), "Ann", "Hi", "sub", "http://img", "<p>x</p>", at).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	p := &entity.Post{AuthorID: 1, AuthorName: "Ann", Title: "Hi", Subtitle: "sub", ImgURL: "http://img", Content: "<p>x</p>", PublishedAt: at}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(11), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CreateUnknownAuthor(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(int64(404), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_author_id_fkey"})

	err := repo.Create(context.Background(), &entity.Post{AuthorID: 404, Title: "t", Subtitle: "s", ImgURL: "u", Content: "c"})
	assert.ErrorIs(t, err, repository.ErrForeignKey)
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM posts\s+WHERE author_id = \$1\s+ORDER BY published_at DESC, id DESC`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(postCols).
			AddRow(int64(2), int64(1), "Ann", "B", "s", "u", "c", newer).
			AddRow(int64(1), int64(1), "Ann", "A", "s", "u", "c", older))

	posts, err := repo.ListByAuthor(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "B", posts[0].Title)
	assert.Equal(t, "A", posts[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListAllEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`FROM posts\s+ORDER BY published_at DESC`).
		WillReturnRows(pgxmock.NewRows(postCols))

	posts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`FROM posts WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostRepository_SearchEscapesWildcards(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`ILIKE \$1`).
		WithArgs(`%50\%\_off%`, 20).
		WillReturnRows(pgxmock.NewRows(postCols))

	_, err := repo.Search(context.Background(), "50%_off", 20)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
