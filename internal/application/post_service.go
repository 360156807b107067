package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
)

// SearchLimit caps the number of search results.
const SearchLimit = 20

// PostIndex is an optional full-text index kept alongside the repository.
type PostIndex interface {
	Index(ctx context.Context, p entity.Post) error
	Search(ctx context.Context, q string, size int) ([]entity.Post, error)
}

// ImageStore keeps uploaded post images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, authorID int64, filename, contentType string, r io.Reader) (string, error)
}

type CreatePostInput struct {
	AuthorID   int64
	AuthorName string
	Title      string
	Subtitle   string
	ImgURL     string
	Content    string
}

type PostService struct {
	Posts  repository.PostRepository
	Index  PostIndex
	Images ImageStore
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewPostService(posts repository.PostRepository, index PostIndex, images ImageStore, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Index: index, Images: images, Logger: logger, Now: time.Now}
}

// Create stamps the post with the server clock and stores it.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	p := &entity.Post{
		AuthorID:   in.AuthorID,
		AuthorName: in.AuthorName,
		Title:      in.Title,
		Subtitle:   in.Subtitle,
		ImgURL:     in.ImgURL,
		Content:    in.Content,
		// postgres keeps microseconds
		PublishedAt: s.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	metrics.Add(metricPostsCreated, 1)

	if s.Index != nil {
		if err := s.Index.Index(ctx, *p); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("index post failed")
		}
	}
	return p, nil
}

func (s *PostService) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]entity.Post, error) {
	posts, err := s.Posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

func (s *PostService) ListAll(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.Posts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Search asks the index first and falls back to the repository when the index is absent or failing.
func (s *PostService) Search(ctx context.Context, query string) ([]entity.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Post{}, nil
	}
	metrics.Add(metricSearches, 1)

	if s.Index != nil {
		posts, err := s.Index.Search(ctx, query, SearchLimit)
		if err == nil {
			return posts, nil
		}
		metrics.Add(metricSearchFallbacks, 1)
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("search index failed, using database")
		}
	}
	posts, err := s.Posts.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) ImagesEnabled() bool {
	return s.Images != nil
}

func (s *PostService) UploadImage(ctx context.Context, authorID int64, filename, contentType string, r io.Reader) (string, error) {
	if s.Images == nil {
		return "", ErrImagesDisabled
	}
	url, err := s.Images.Upload(ctx, authorID, filename, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
