package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		check  func(error) bool
		status int
	}{
		{"validation", NewValidationError("bad"), IsValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("node n1"), IsNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), IsConflict, http.StatusConflict},
		{"reference", NewReferenceError("missing"), IsReference, http.StatusUnprocessableEntity},
		{"limit", NewLimitExceededError("nodes", 10), IsLimitExceeded, http.StatusUnprocessableEntity},
		{"unauthorized", NewUnauthorizedError(""), IsUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("layer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.Equal(t, tt.status, GetAppError(wrapped).HTTPStatus)
		})
	}
}

func TestWrap(t *testing.T) {
	original := NewNotFoundError("edge e1")
	wrapped := Wrap(original, "remove edge")

	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "remove edge: edge e1 not found", GetAppError(wrapped).Message)
	assert.Equal(t, "edge e1 not found", original.Message, "original must not be mutated")

	plain := Wrap(fmt.Errorf("boom"), "save")
	assert.True(t, IsType(plain, ErrorTypeInternal))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestErrorHandler_Handle(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)

	t.Run("app error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/graphs/g/edges", nil)
		h.Handle(rec, req, NewReferenceError("edge source n9 does not exist"))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Error)
		assert.Equal(t, "REFERENCE", body.Type)
		assert.Equal(t, "edge source n9 does not exist", body.Message)
	})

	t.Run("plain error hides message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.Handle(rec, req, fmt.Errorf("secret detail"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})
}

func TestErrorHandler_Middleware(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	rec := httptest.NewRecorder()
	h.Middleware(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL")
}
