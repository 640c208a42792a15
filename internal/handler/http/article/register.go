package article

import (
	"net/http"

	artUC "blog/internal/usecase/article"
)

// Register registers the public and admin article routes with the given mux.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /articles", PublicListHandler{Svc: svc})

	mux.Handle("GET /admin/articles", AdminListHandler{Svc: svc})
	mux.Handle("POST /admin/articles", CreateHandler{Svc: svc})
	mux.Handle("GET /admin/articles/{id}", GetHandler{Svc: svc})
	mux.Handle("PUT /admin/articles/{id}", UpdateHandler{Svc: svc})
	mux.Handle("GET /admin/authors", AuthorsHandler{Svc: svc})
}
