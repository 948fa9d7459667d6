// Package http provides HTTP handlers for grant catalog management and
// policy compilation operations.
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

// CatalogHandler handles HTTP requests for grant catalog management.
type CatalogHandler struct {
	catalogUseCase policyUseCase.CatalogUseCase
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog handler with required dependencies.
func NewCatalogHandler(catalogUseCase policyUseCase.CatalogUseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a new grant catalog.
// POST /v1/catalogs
// Returns 201 Created with the stored catalog, or 422 when the grants fail
// structural validation (nothing is stored in that case).
func (h *CatalogHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCatalogRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request shape
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	for i := range req.Grants {
		if err := req.Grants[i].Validate(); err != nil {
			httputil.HandleValidationErrorGin(
				c,
				customValidation.WrapValidationError(fmt.Errorf("grant %q: %w", req.Grants[i].ID, err)),
				h.logger,
			)
			return
		}
	}

	catalog, err := h.catalogUseCase.Create(c.Request.Context(), req.Name, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCatalogToResponse(catalog))
}

// GetHandler retrieves a grant catalog by id.
// GET /v1/catalogs/:id
func (h *CatalogHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid catalog id: %w", err), h.logger)
		return
	}

	catalog, err := h.catalogUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCatalogToResponse(catalog))
}

// ListHandler lists grant catalogs with pagination.
// GET /v1/catalogs?offset=0&limit=50
func (h *CatalogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	catalogs, err := h.catalogUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCatalogsToListResponse(catalogs))
}

// DeleteHandler removes a grant catalog by id.
// DELETE /v1/catalogs/:id
// Returns 204 No Content on success.
func (h *CatalogHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid catalog id: %w", err), h.logger)
		return
	}

	if err := h.catalogUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
