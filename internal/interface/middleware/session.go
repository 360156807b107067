package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

const ctxCurrentUser = "current_user"

// UserResolver maps a session token to its user; *application.SessionService implements it.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// Session resolves the current user once per request from the session cookie.
// Stale cookies are cleared; store failures are logged and the request continues anonymously.
func Session(resolver UserResolver, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Session(c)
		if token == "" {
			c.Next()
			return
		}
		u, err := resolver.CurrentUser(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ctxCurrentUser, u)
		case errors.Is(err, application.ErrAnonymous):
			cookies.Clear(c)
		default:
			helpers.LogError(logger, "resolve session failed", err, logrus.Fields{"request_id": c.GetString(CtxRequestID)})
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by Session, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ctxCurrentUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// RequireAuth redirects anonymous requests to loginPath, remembering where they were going.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}
