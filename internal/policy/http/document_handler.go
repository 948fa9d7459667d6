package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/policies/internal/httputil"
	"github.com/allisson/policies/internal/policy/http/dto"
	policyUseCase "github.com/allisson/policies/internal/policy/usecase"
	customValidation "github.com/allisson/policies/internal/validation"
)

// DocumentHandler handles HTTP requests for compiled policy document retrieval.
type DocumentHandler struct {
	compileUseCase policyUseCase.CompileUseCase
	logger         *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(compileUseCase policyUseCase.CompileUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		compileUseCase: compileUseCase,
		logger:         logger,
	}
}

// ListByPrincipalHandler lists the stored compiled documents for a principal,
// newest first.
// GET /v1/documents/:principal
func (h *DocumentHandler) ListByPrincipalHandler(c *gin.Context) {
	principal := c.Param("principal")
	if err := customValidation.PrincipalName.Validate(principal); err != nil || principal == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid principal name"),
			h.logger,
		)
		return
	}

	documents, err := h.compileUseCase.ListDocuments(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentsToListResponse(documents))
}
