package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
	"github.com/allisson/policies/internal/policy/http/dto"
	policyMocks "github.com/allisson/policies/internal/policy/usecase/mocks"
)

func documentRouter(handler *DocumentHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/documents/:principal", handler.ListByPrincipalHandler)
	return router
}

func TestDocumentHandler_ListByPrincipalHandler(t *testing.T) {
	logger := slog.Default()

	t.Run("Success_ListDocuments", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCompileUseCase)
		handler := NewDocumentHandler(mockUseCase, logger)
		router := documentRouter(handler)

		documents := []*policyDomain.CompiledDocument{
			compilationResultFixture(uuid.Must(uuid.NewV7())).Read,
		}
		mockUseCase.On("ListDocuments", mock.Anything, "payments-service").
			Return(documents, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/documents/payments-service", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListDocumentsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "payments-service", response.Data[0].Principal)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EmptyList", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCompileUseCase)
		handler := NewDocumentHandler(mockUseCase, logger)
		router := documentRouter(handler)

		mockUseCase.On("ListDocuments", mock.Anything, "unknown-service").
			Return([]*policyDomain.CompiledDocument{}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/documents/unknown-service", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListDocumentsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Empty(t, response.Data)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPrincipal", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCompileUseCase)
		handler := NewDocumentHandler(mockUseCase, logger)
		router := documentRouter(handler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/documents/Payments", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "ListDocuments", mock.Anything, mock.Anything)
	})

	t.Run("Error_UseCaseFails", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCompileUseCase)
		handler := NewDocumentHandler(mockUseCase, logger)
		router := documentRouter(handler)

		mockUseCase.On("ListDocuments", mock.Anything, "payments-service").
			Return(nil, assert.AnError).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/documents/payments-service", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}
