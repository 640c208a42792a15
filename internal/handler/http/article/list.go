package article

import (
	"net/http"

	"blog/internal/handler/http/respond"
	artUC "blog/internal/usecase/article"
)

// PublicListHandler serves published articles, oldest first.
type PublicListHandler struct{ Svc *artUC.Service }

func (h PublicListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.ListPublished(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, out)
}

// AdminListHandler serves every article with its author, newest first.
// A dangling author reference fails the whole response with 500.
type AdminListHandler struct{ Svc *artUC.Service }

func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListForAdmin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]AdminDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toAdminDTO(item))
	}
	respond.JSON(w, http.StatusOK, out)
}

// AuthorsHandler serves the author list used by the admin form.
type AuthorsHandler struct{ Svc *artUC.Service }

func (h AuthorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Svc.ListAuthors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorDTO(a))
	}
	respond.JSON(w, http.StatusOK, out)
}
