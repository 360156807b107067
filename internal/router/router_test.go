package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursenet/config"
	"github.com/oksasatya/coursenet/internal/container"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, opts ...func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := config.Defaults()
	cfg.StoreDriver = container.DriverMemory
	cfg.PasswordIterations = 1000
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	r, err := NewEngine(DepsFromContainer(c))
	require.NoError(t, err)
	return r
}

// client keeps the session cookie between requests, like a browser.
type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name != "session" {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func TestScenario_RegisterLoginPostAndBrowse(t *testing.T) {
	engine := newEngine(t)
	ann := &client{t: t, engine: engine}

	w := ann.post("/register", url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	// a fresh login replaces the registration session
	w = ann.post("/login", url.Values{"email": {"ann@x.com"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	require.NotNil(t, ann.cookie)

	w = ann.post("/make-post", url.Values{
		"title":    {"Hi"},
		"subtitle": {"S"},
		"img_url":  {"u"},
		"content":  {"c"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = ann.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), `class="post-preview"`))
	assert.Contains(t, w.Body.String(), `<h2 class="post-title">Hi</h2>`)
	assert.Contains(t, w.Body.String(), "Log Out (Ann)")

	anon := &client{t: t, engine: engine}
	w = anon.get("/community")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<h2 class="post-title">Hi</h2>`)
	assert.Contains(t, w.Body.String(), "Posted by Ann")
	assert.NotContains(t, w.Body.String(), "Log Out")

	w = anon.get("/")
	assert.Equal(t, 0, strings.Count(w.Body.String(), `class="post-preview"`))

	w = anon.get("/post/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `src="u"`)
}

func TestScenario_UnknownEmailIsAuthError(t *testing.T) {
	ghost := &client{t: t, engine: newEngine(t)}

	w := ghost.post("/login", url.Values{"email": {"ghost@x.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
	assert.Nil(t, ghost.cookie)
}

func TestGuardedPagesRedirectToLogin(t *testing.T) {
	anon := &client{t: t, engine: newEngine(t)}

	for _, path := range []string{"/make-post", "/logout"} {
		w := anon.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), w.Header().Get("Location"), path)
	}
}

func TestLoginHonoursNext(t *testing.T) {
	engine := newEngine(t)
	ann := &client{t: t, engine: engine}
	require.Equal(t, http.StatusSeeOther, ann.post("/register", url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "password": {"secret1"}}).Code)
	ann.get("/logout")
	require.Nil(t, ann.cookie)

	w := ann.get("/login?next=/make-post")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="/make-post"`)

	w = ann.post("/login", url.Values{"email": {"ann@x.com"}, "password": {"secret1"}, "next": {"/make-post"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/make-post", w.Header().Get("Location"))
}

func TestLogoutEndsSession(t *testing.T) {
	engine := newEngine(t)
	ann := &client{t: t, engine: engine}
	require.Equal(t, http.StatusSeeOther, ann.post("/register", url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "password": {"secret1"}}).Code)
	stale := ann.cookie

	w := ann.get("/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Nil(t, ann.cookie)

	// replaying the old cookie is anonymous
	replay := &client{t: t, engine: engine, cookie: stale}
	w = replay.get("/make-post")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	anon := &client{t: t, engine: newEngine(t), cookie: &http.Cookie{Name: "session", Value: "garbage"}}
	w := anon.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log In")
}

func TestNotFoundPages(t *testing.T) {
	anon := &client{t: t, engine: newEngine(t)}
	for _, path := range []string{"/post/999", "/post/abc", "/nope"} {
		w := anon.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestStaticPages(t *testing.T) {
	anon := &client{t: t, engine: newEngine(t)}

	w := anon.get("/about")
	assert.Equal(t, http.StatusOK, w.Code)

	w = anon.get("/static/css/styles.css")
	assert.Equal(t, http.StatusOK, w.Code)

	w = anon.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	w = anon.get("/debug/vars")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDebugVarsWhenEnabled(t *testing.T) {
	anon := &client{t: t, engine: newEngine(t, func(cfg *config.Config) { cfg.DebugMetricsEnabled = true })}

	w := anon.get("/debug/vars")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"coursenet"`)
}

func TestAPIFeed(t *testing.T) {
	engine := newEngine(t)
	ann := &client{t: t, engine: engine}
	require.Equal(t, http.StatusSeeOther, ann.post("/register", url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "password": {"secret1"}}).Code)
	for _, title := range []string{"First", "Second"} {
		w := ann.post("/make-post", url.Values{"title": {title}, "subtitle": {"S"}, "img_url": {"https://example.com/a.png"}, "content": {"c"}})
		require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	}

	w := (&client{t: t, engine: engine}).get("/api/posts")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			ID         int64  `json:"id"`
			Title      string `json:"title"`
			AuthorName string `json:"author_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Second", body.Data[0].Title)
	assert.Equal(t, "First", body.Data[1].Title)
	assert.Equal(t, "Ann", body.Data[0].AuthorName)
}
