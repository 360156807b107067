// Package storage uploads post images to Google Cloud Storage.
package storage

import (
	"context"
	"io"
	"path"
	"strconv"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/coursenet/pkg/helpers"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type ImageStore struct {
	client *gcs.Client
	bucket string
}

func NewImageStore(client *gcs.Client, bucket string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket}
}

// Upload stores r under a fresh object name for authorID and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, authorID int64, filename, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, ObjectName(authorID, filename), contentType, r)
}

// ObjectName returns posts/<authorID>/<uuid><ext>; unknown extensions are dropped.
func ObjectName(authorID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExt[ext] {
		ext = ""
	}
	return path.Join("posts", strconv.FormatInt(authorID, 10), uuid.NewString()+ext)
}
