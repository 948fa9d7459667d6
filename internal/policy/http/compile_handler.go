package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/policies/internal/httputil"
	"github.com/allisson/policies/internal/policy/http/dto"
	policyUseCase "github.com/allisson/policies/internal/policy/usecase"
	customValidation "github.com/allisson/policies/internal/validation"
)

// CompileHandler handles HTTP requests for policy compilation.
type CompileHandler struct {
	compileUseCase policyUseCase.CompileUseCase
	logger         *slog.Logger
}

// NewCompileHandler creates a new compile handler with required dependencies.
func NewCompileHandler(compileUseCase policyUseCase.CompileUseCase, logger *slog.Logger) *CompileHandler {
	return &CompileHandler{
		compileUseCase: compileUseCase,
		logger:         logger,
	}
}

// CompileHandler compiles a stored catalog into the READ/WRITE policy
// document pair for a principal.
// POST /v1/catalogs/:id/compile
// Returns 201 Created with both stored documents. Compilation is all or
// nothing: a missing identifier or failed validation stores nothing and
// returns 422.
func (h *CompileHandler) CompileHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid catalog id: %w", err), h.logger)
		return
	}

	var req dto.CompileRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.compileUseCase.Compile(c.Request.Context(), id, req.Principal, req.Identifiers)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCompilationToResponse(result))
}
