package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"blog/internal/domain/entity"
	"blog/internal/domain/validation"
	"blog/internal/handler/http/pathutil"
	"blog/internal/handler/http/respond"
	"blog/internal/observability/logging"
	artUC "blog/internal/usecase/article"
)

var (
	errArticleNotFound = errors.New("article not found")
	errInvalidBody     = errors.New("invalid request body: expected a JSON object")
	errBodyTooLarge    = errors.New("request body too large")
	errTimeout         = errors.New("request timed out")
)

// writeError maps core errors onto status codes. Only fixed messages reach
// the client; the wrapped error goes to the request logger.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	switch {
	case errors.Is(err, pathutil.ErrInvalidID), errors.Is(err, artUC.ErrInvalidArticleID):
		respond.Error(w, http.StatusBadRequest, pathutil.ErrInvalidID)
	case errors.Is(err, entity.ErrNotFound):
		respond.Error(w, http.StatusNotFound, errArticleNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request deadline exceeded", slog.String("error", respond.SanitizeError(err)))
		respond.Error(w, http.StatusGatewayTimeout, errTimeout)
	case errors.Is(err, entity.ErrMissingRelation):
		logger.Error("integrity fault", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		logger.Error("request failed", slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// writeOutcome renders a command outcome: accepted as successCode with the
// article, rejected as 422, failed through writeError.
func writeOutcome(w http.ResponseWriter, r *http.Request, successCode int, outcome artUC.Outcome) {
	switch outcome.State {
	case artUC.StateAccepted:
		respond.JSON(w, successCode, toDTO(outcome.Article))
	case artUC.StateRejected:
		respond.ValidationErrors(w, outcome.Errors)
	default:
		err := outcome.Err
		if err == nil {
			err = fmt.Errorf("command ended in state %s", outcome.State)
		}
		writeError(w, r, err)
	}
}

// decodeInput decodes a JSON object body into raw form input. Numbers are kept
// as json.Number so the form schema decides what is a valid id.
func decodeInput(r *http.Request) (validation.Input, error) {
	if r.Body == nil {
		return nil, errInvalidBody
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var in validation.Input
	if err := dec.Decode(&in); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		if errors.Is(err, io.EOF) {
			return validation.Input{}, nil
		}
		return nil, errInvalidBody
	}
	if in == nil {
		return nil, errInvalidBody
	}
	return in, nil
}

func writeDecodeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		code = http.StatusRequestEntityTooLarge
	}
	respond.Error(w, code, err)
}
