package article

import (
	"net/http"

	artUC "blog/internal/usecase/article"
)

// CreateHandler answers 201 with the stored article or 422 with every field error.
type CreateHandler struct{ Svc *artUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	writeOutcome(w, r, http.StatusCreated, h.Svc.CreateArticle(r.Context(), in))
}
