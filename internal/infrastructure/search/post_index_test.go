package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

func newIndex(t *testing.T, h http.HandlerFunc) *PostIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := helpers.NewESClient([]string{srv.URL}, "", "", nil)
	require.NoError(t, err)
	return NewPostIndex(es, "posts")
}

func TestPostIndex_Index(t *testing.T) {
	var method, path string
	var doc entity.Post
	idx := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&doc)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	p := entity.Post{ID: 5, AuthorID: 1, AuthorName: "Ann", Title: "Hi", PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, idx.Index(context.Background(), p))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/posts/_doc/5", path)
	assert.Equal(t, "Hi", doc.Title)
	assert.Equal(t, "Ann", doc.AuthorName)
}

func TestPostIndex_Search(t *testing.T) {
	var body map[string]any
	idx := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"hits":{"hits":[
			{"_id":"2","_source":{"id":2,"author_id":1,"title":"Go tips","published_at":"2024-01-02T00:00:00Z"}},
			{"_id":"1","_source":{"id":1,"author_id":3,"title":"More go","published_at":"2024-01-01T00:00:00Z"}}
		]}}`)
	})

	res, err := idx.Search(context.Background(), "go", 10)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(2), res[0].ID)
	assert.Equal(t, "More go", res[1].Title)
	assert.EqualValues(t, 10, body["size"])
}

func TestPostIndex_SearchErrorStatus(t *testing.T) {
	idx := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"boom"}`)
	})

	_, err := idx.Search(context.Background(), "go", 10)
	assert.Error(t, err)
}
