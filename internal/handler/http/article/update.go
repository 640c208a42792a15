package article

import (
	"net/http"

	"blog/internal/handler/http/pathutil"
	artUC "blog/internal/usecase/article"
)

// UpdateHandler replaces the writable fields of one article.
// The path id is checked before the body is read.
type UpdateHandler struct{ Svc *artUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	in, err := decodeInput(r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	writeOutcome(w, r, http.StatusOK, h.Svc.UpdateArticle(r.Context(), id, in))
}
