package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "upstream-123")
	w = serve(r, req)
	assert.Equal(t, "upstream-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "bad id\nwith newline")
	w = serve(r, req)
	assert.NotEqual(t, "bad id\nwith newline", w.Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientIP(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	assert.Equal(t, "198.51.100.2", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", serve(r, req).Body.String())
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		dl, ok := c.Request.Context().Deadline()
		if !ok || time.Until(dl) > time.Second {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

type stubResolver struct {
	users map[string]*entity.User
	err   error
}

func (s stubResolver) CurrentUser(_ context.Context, token string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, application.ErrAnonymous
}

func sessionEngine(res UserResolver) *gin.Engine {
	cookies := helpers.NewCookie("session", "", false)
	r := gin.New()
	r.Use(Session(res, cookies, helpers.NewDiscardLogger()))
	r.GET("/whoami", func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok {
			c.String(http.StatusOK, u.Name)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/make-post", RequireAuth("/login"), func(c *gin.Context) { c.String(http.StatusOK, "form") })
	return r
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	return req
}

func TestSession_ResolvesUser(t *testing.T) {
	r := sessionEngine(stubResolver{users: map[string]*entity.User{"tok": {ID: 1, Name: "Ann"}}})

	w := serve(r, withSession(httptest.NewRequest(http.MethodGet, "/whoami", nil), "tok"))
	assert.Equal(t, "Ann", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestSession_ClearsStaleCookie(t *testing.T) {
	r := sessionEngine(stubResolver{})

	w := serve(r, withSession(httptest.NewRequest(http.MethodGet, "/whoami", nil), "stale"))
	assert.Equal(t, "anonymous", w.Body.String())
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, "session", w.Result().Cookies()[0].Name)
	assert.Less(t, w.Result().Cookies()[0].MaxAge, 0)
}

func TestSession_StoreErrorIsAnonymous(t *testing.T) {
	r := sessionEngine(stubResolver{err: errors.New("redis down")})

	w := serve(r, withSession(httptest.NewRequest(http.MethodGet, "/whoami", nil), "tok"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "cookie is kept when the store is unreachable")
}

func TestRequireAuth(t *testing.T) {
	r := sessionEngine(stubResolver{users: map[string]*entity.User{"tok": {ID: 1, Name: "Ann"}}})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/make-post", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fmake-post", w.Header().Get("Location"))

	w = serve(r, withSession(httptest.NewRequest(http.MethodGet, "/make-post", nil), "tok"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "form", w.Body.String())
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := helpers.NewLoggerTo(&buf, "coursenet", "production")

	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLog(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	out := buf.String()
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"path":"/missing"`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"request_id"`)
}
