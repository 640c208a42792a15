package article

import (
	"net/http"

	"blog/internal/handler/http/pathutil"
	"blog/internal/handler/http/respond"
	artUC "blog/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	article, err := h.Svc.FindArticle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}
