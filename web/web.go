// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/oksasatya/coursenet/internal/domain/entity"
)

//go:embed templates/*.html static
var files embed.FS

// FuncMap is available in every page template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// post content is trusted rich text
		"safe":       func(s string) template.HTML { return template.HTML(s) },
		"formatDate": func(t time.Time) string { return t.Format(entity.DateLayout) },
		"year":       func() int { return time.Now().Year() },
	}
}

// Templates parses every page; each is addressed by its file name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(files, "templates/*.html")
}

// Static serves the bundled css.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
