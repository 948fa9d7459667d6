package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/policies/internal/metrics"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// catalogUseCaseWithMetrics decorates CatalogUseCase with metrics instrumentation.
type catalogUseCaseWithMetrics struct {
	next    CatalogUseCase
	metrics metrics.BusinessMetrics
}

// NewCatalogUseCaseWithMetrics wraps a CatalogUseCase with metrics recording.
func NewCatalogUseCaseWithMetrics(useCase CatalogUseCase, m metrics.BusinessMetrics) CatalogUseCase {
	return &catalogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for catalog creation operations.
func (c *catalogUseCaseWithMetrics) Create(
	ctx context.Context,
	name string,
	grants []policyDomain.CapabilityGrant,
) (*policyDomain.StoredCatalog, error) {
	start := time.Now()
	catalog, err := c.next.Create(ctx, name, grants)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "catalog", "catalog_create", status)
	c.metrics.RecordDuration(ctx, "catalog", "catalog_create", time.Since(start), status)

	return catalog, err
}

// Get records metrics for catalog retrieval operations.
func (c *catalogUseCaseWithMetrics) Get(
	ctx context.Context,
	id uuid.UUID,
) (*policyDomain.StoredCatalog, error) {
	start := time.Now()
	catalog, err := c.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "catalog", "catalog_get", status)
	c.metrics.RecordDuration(ctx, "catalog", "catalog_get", time.Since(start), status)

	return catalog, err
}

// List records metrics for catalog listing operations.
func (c *catalogUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*policyDomain.StoredCatalog, error) {
	start := time.Now()
	catalogs, err := c.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "catalog", "catalog_list", status)
	c.metrics.RecordDuration(ctx, "catalog", "catalog_list", time.Since(start), status)

	return catalogs, err
}

// Delete records metrics for catalog deletion operations.
func (c *catalogUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "catalog", "catalog_delete", status)
	c.metrics.RecordDuration(ctx, "catalog", "catalog_delete", time.Since(start), status)

	return err
}

// compileUseCaseWithMetrics decorates CompileUseCase with metrics instrumentation.
type compileUseCaseWithMetrics struct {
	next    CompileUseCase
	metrics metrics.BusinessMetrics
}

// NewCompileUseCaseWithMetrics wraps a CompileUseCase with metrics recording.
func NewCompileUseCaseWithMetrics(useCase CompileUseCase, m metrics.BusinessMetrics) CompileUseCase {
	return &compileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Compile records metrics for policy compilation operations.
func (c *compileUseCaseWithMetrics) Compile(
	ctx context.Context,
	catalogID uuid.UUID,
	principal string,
	identifiers map[string]string,
) (*policyDomain.CompilationResult, error) {
	start := time.Now()
	result, err := c.next.Compile(ctx, catalogID, principal, identifiers)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "compile", "policy_compile", status)
	c.metrics.RecordDuration(ctx, "compile", "policy_compile", time.Since(start), status)

	return result, err
}

// ListDocuments records metrics for compiled document listing operations.
func (c *compileUseCaseWithMetrics) ListDocuments(
	ctx context.Context,
	principal string,
) ([]*policyDomain.CompiledDocument, error) {
	start := time.Now()
	documents, err := c.next.ListDocuments(ctx, principal)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "compile", "document_list", status)
	c.metrics.RecordDuration(ctx, "compile", "document_list", time.Since(start), status)

	return documents, err
}
