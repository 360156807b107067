package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/interface/middleware"
	"github.com/oksasatya/coursenet/pkg/helpers"
	"github.com/oksasatya/coursenet/pkg/validation"
)

const msgInvalidCredentials = "Invalid email or password."

type AuthHandler struct {
	Creds     *application.CredentialService
	Sessions  *application.SessionService
	Cookies   *helpers.Manager
	Validator *validation.Validator
	View      *View
	Logger    *logrus.Logger
}

func NewAuthHandler(creds *application.CredentialService, sessions *application.SessionService, cookies *helpers.Manager, v *validation.Validator, view *View, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Creds: creds, Sessions: sessions, Cookies: cookies, Validator: v, View: view, Logger: logger}
}

// LoginForm GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.View.HTML(c, http.StatusOK, "login.html", page{Title: "Log In", Form: loginForm{}, Next: c.Query("next")})
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	form := bindLoginForm(c)
	next := c.PostForm("next")
	blank := loginForm{Email: form.Email}

	if errs := h.Validator.Struct(form); errs != nil {
		h.View.HTML(c, http.StatusUnprocessableEntity, "login.html", page{Title: "Log In", Form: blank, Errors: errs, Next: next})
		return
	}

	sess, err := h.Sessions.Login(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		h.View.HTML(c, http.StatusUnauthorized, "login.html", page{Title: "Log In", Form: blank, Flash: msgInvalidCredentials, Next: next})
		return
	}
	if err != nil {
		h.View.Fail(c, err)
		return
	}

	h.replaceSession(c, sess)
	c.Redirect(http.StatusSeeOther, safeNext(next))
}

// RegisterForm GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.View.HTML(c, http.StatusOK, "register.html", page{Title: "Register", Form: registerForm{}})
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	form := bindRegisterForm(c)
	blank := registerForm{Name: form.Name, Email: form.Email}

	if errs := h.Validator.Struct(form); errs != nil {
		h.View.HTML(c, http.StatusUnprocessableEntity, "register.html", page{Title: "Register", Form: blank, Errors: errs})
		return
	}

	u, err := h.Creds.Register(c.Request.Context(), form.Name, form.Email, form.Password)
	if errors.Is(err, application.ErrEmailTaken) {
		errs := validation.FieldErrors{{Field: "email", Message: "is already registered"}}
		h.View.HTML(c, http.StatusConflict, "register.html", page{Title: "Register", Form: blank, Errors: errs})
		return
	}
	if err != nil {
		h.View.Fail(c, err)
		return
	}

	sess, err := h.Sessions.Establish(c.Request.Context(), u)
	if err != nil {
		h.View.Fail(c, err)
		return
	}
	h.replaceSession(c, sess)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context(), h.Cookies.Session(c)); err != nil {
		helpers.LogError(h.Logger, "logout failed", err, logrus.Fields{"request_id": c.GetString(middleware.CtxRequestID)})
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// replaceSession revokes the session the client came with, if any, and hands out sess.
func (h *AuthHandler) replaceSession(c *gin.Context, sess *application.Session) {
	if old := h.Cookies.Session(c); old != "" {
		if err := h.Sessions.Logout(c.Request.Context(), old); err != nil {
			helpers.LogError(h.Logger, "revoke previous session failed", err, logrus.Fields{"user_id": sess.User.ID})
		}
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	helpers.LogInfo(h.Logger, "user logged in", logrus.Fields{"user_id": sess.User.ID, "request_id": c.GetString(middleware.CtxRequestID)})
}
