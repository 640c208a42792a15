// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"blog/internal/domain/validation"
)

// ErrorBody is the JSON shape of single-message error responses.
type ErrorBody struct {
	Error string `json:"error"`
}

// ValidationBody is the JSON shape of 422 responses.
type ValidationBody struct {
	Errors validation.Errors `json:"errors"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// ValidationErrors writes 422 with every field violation, in rule order.
// A nil slice is rendered as an empty list.
func ValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	if errs == nil {
		errs = validation.Errors{}
	}
	JSON(w, http.StatusUnprocessableEntity, ValidationBody{Errors: errs})
}

var safeFragments = []string{
	"required",
	"invalid",
	"must be",
	"cannot be",
	"too large",
}

// SafeError sanitizes error messages before returning them to users.
// 5xx errors and messages that do not look user-facing are replaced with
// "internal server error"; the sanitized detail goes to the log.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	if code < http.StatusInternalServerError {
		lowerMsg := strings.ToLower(msg)
		for _, safe := range safeFragments {
			if strings.Contains(lowerMsg, safe) {
				isSafe = true
				break
			}
		}
	}

	if isSafe {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}
