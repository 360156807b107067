package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name     string `form:"name" validate:"required,max=1000"`
	Email    string `form:"email" validate:"required,email,max=100"`
	Password string `form:"password" validate:"required,pwd"`
}

type postForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required_without=HasImage,max=250"`
	Content  string `form:"content" validate:"required"`
	HasImage bool   `form:"-"`
}

func bindLoginForm(c *gin.Context) loginForm {
	return loginForm{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
}

func bindRegisterForm(c *gin.Context) registerForm {
	return registerForm{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
}

func bindPostForm(c *gin.Context) postForm {
	return postForm{
		Title:    strings.TrimSpace(c.PostForm("title")),
		Subtitle: strings.TrimSpace(c.PostForm("subtitle")),
		ImgURL:   strings.TrimSpace(c.PostForm("img_url")),
		Content:  strings.TrimSpace(c.PostForm("content")),
	}
}

// safeNext keeps redirects on this site: only absolute local paths pass.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	return next
}
