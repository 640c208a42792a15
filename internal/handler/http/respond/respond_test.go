package respond

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog/internal/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     any
		wantBody string
	}{
		{"map", http.StatusOK, map[string]string{"message": "success"}, `{"message":"success"}`},
		{"struct", http.StatusCreated, struct {
			ID int `json:"id"`
		}{ID: 123}, `{"id":123}`},
		{"nil", http.StatusNoContent, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			JSON(rr, tt.code, tt.data)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.wantBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		JSON(rr, http.StatusOK, map[string]float64{"bad": math.Inf(1)})
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusNotFound, errors.New("article not found"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"article not found"}`, rr.Body.String())
}

func TestValidationErrors(t *testing.T) {
	errs := validation.Errors{
		{Field: "title", Kind: validation.KindMissingField, Message: "title is required"},
		{Field: "published_at", Kind: validation.KindConditionalRequired, Message: "published_at is required when status is published"},
	}

	rr := httptest.NewRecorder()
	ValidationErrors(rr, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"errors":[
		{"field":"title","kind":"missing_field","message":"title is required"},
		{"field":"published_at","kind":"conditional_required_field","message":"published_at is required when status is published"}
	]}`, rr.Body.String())
}

func TestValidationErrors_Nil(t *testing.T) {
	rr := httptest.NewRecorder()
	ValidationErrors(rr, nil)

	assert.JSONEq(t, `{"errors":[]}`, rr.Body.String())
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantBody string
	}{
		{"invalid id passes through", http.StatusBadRequest, errors.New("invalid id"), `{"error":"invalid id"}`},
		{"body too large passes through", http.StatusRequestEntityTooLarge, errors.New("request body too large"), `{"error":"request body too large"}`},
		{"unknown 4xx message hidden", http.StatusBadRequest, errors.New("pq: syntax error at or near"), `{"error":"internal server error"}`},
		{"5xx always hidden", http.StatusInternalServerError, errors.New("invalid connection"), `{"error":"internal server error"}`},
		{"gateway timeout hidden", http.StatusGatewayTimeout, errors.New("context deadline exceeded"), `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SafeError(rr, tt.code, tt.err)

			assert.Equal(t, tt.code, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestSafeError_NilError(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, http.StatusBadRequest, nil)

	assert.Empty(t, rr.Body.String())
}
