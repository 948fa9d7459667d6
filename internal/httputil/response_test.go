package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/policies/internal/errors"
)

func testGinContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "not found",
			err:        apperrors.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "not_found",
		},
		{
			name:       "conflict",
			err:        apperrors.ErrConflict,
			wantStatus: http.StatusConflict,
			wantError:  "conflict",
		},
		{
			name:       "invalid input",
			err:        apperrors.Wrap(apperrors.ErrInvalidInput, "bad grant"),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "invalid_input",
		},
		{
			name:       "unauthorized",
			err:        apperrors.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
		{
			name:       "forbidden",
			err:        apperrors.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantError:  "forbidden",
		},
		{
			name:       "internal error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testGinContext(t)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.wantStatus, w.Code)
			response := decodeErrorResponse(t, w)
			assert.Equal(t, tt.wantError, response.Error)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := testGinContext(t)

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		c, w := testGinContext(t)

		HandleErrorGin(c, apperrors.ErrNotFound, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := testGinContext(t)

	HandleBadRequestGin(c, assert.AnError, slog.Default())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeErrorResponse(t, w)
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, assert.AnError.Error(), response.Message)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := testGinContext(t)

	HandleValidationErrorGin(c, assert.AnError, slog.Default())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := decodeErrorResponse(t, w)
	assert.Equal(t, "validation_error", response.Error)
}
