// Package home renders the public home page: the published articles, oldest first.
package home

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"blog/internal/domain/entity"
	"blog/internal/observability/logging"
	"blog/pkg/security/csp"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("home.html").Funcs(template.FuncMap{
		"date": func(a entity.Article) string {
			if a.PublishedAt == nil {
				return ""
			}
			return a.PublishedAt.UTC().Format("2006-01-02")
		},
	}).ParseFS(templateFS, "templates/home.html"),
)

// Lister is the read side the page needs. *article.Service satisfies it.
type Lister interface {
	ListPublished(ctx context.Context) ([]entity.Article, error)
}

// Handler serves GET /.
type Handler struct {
	Articles Lister
	Title    string
}

type pageData struct {
	Title    string
	Articles []entity.Article
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	articles, err := h.Articles.ListPublished(r.Context())
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusGatewayTimeout
		}
		logger.Error("home: list published articles", slog.Any("error", err))
		http.Error(w, http.StatusText(code), code)
		return
	}

	title := h.Title
	if title == "" {
		title = "Blog"
	}

	// Render into a buffer so a template failure can still produce a 500.
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Title: title, Articles: articles}); err != nil {
		logger.Error("home: render template", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Register mounts the home page on mux. "GET /{$}" matches only the root path.
func Register(mux *http.ServeMux, articles Lister, title string) {
	mux.Handle("GET /{$}", csp.Middleware(csp.PagePolicy())(Handler{Articles: articles, Title: title}))
}
