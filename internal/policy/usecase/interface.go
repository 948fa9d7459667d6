// Package usecase implements business logic orchestration for policy
// assembly. It coordinates the grant-catalog repository, the statement
// compiler, the document signer, and the optional document exporter to turn
// deployment configuration into attachable least-privilege policy documents.
package usecase

import (
	"context"

	"github.com/google/uuid"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// CatalogRepository defines the interface for grant catalog persistence.
type CatalogRepository interface {
	Create(ctx context.Context, catalog *policyDomain.StoredCatalog) error
	Get(ctx context.Context, id uuid.UUID) (*policyDomain.StoredCatalog, error)
	List(ctx context.Context, offset, limit int) ([]*policyDomain.StoredCatalog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepository defines the interface for compiled document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, document *policyDomain.CompiledDocument) error
	ListByPrincipal(ctx context.Context, principal string) ([]*policyDomain.CompiledDocument, error)
}

// Exporter publishes a compiled document pair to the location the
// provisioning layer consumes from (e.g. an object-storage bucket).
type Exporter interface {
	Export(ctx context.Context, principal string, set *policyDomain.DocumentSet) error
}

// CatalogUseCase defines the interface for grant catalog management.
type CatalogUseCase interface {
	// Create validates the grants as a catalog and persists them as
	// deployment configuration. Structural violations surface as a
	// CatalogError before anything is stored.
	Create(ctx context.Context, name string, grants []policyDomain.CapabilityGrant) (*policyDomain.StoredCatalog, error)
	Get(ctx context.Context, id uuid.UUID) (*policyDomain.StoredCatalog, error)
	List(ctx context.Context, offset, limit int) ([]*policyDomain.StoredCatalog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompileUseCase defines the interface for policy compilation.
type CompileUseCase interface {
	// Compile loads the catalog, compiles it against the resolved-identifier
	// map, signs and stores the resulting READ/WRITE documents for the given
	// principal, and exports them when an exporter is configured.
	// Compilation is fail-closed up to storage: any compile, sign, or store
	// error leaves nothing stored or exported. Export runs after the storage
	// transaction commits, so an export failure returns an error while the
	// stored pair remains queryable.
	Compile(
		ctx context.Context,
		catalogID uuid.UUID,
		principal string,
		identifiers map[string]string,
	) (*policyDomain.CompilationResult, error)

	// ListDocuments returns the stored compiled documents for a principal,
	// newest first.
	ListDocuments(ctx context.Context, principal string) ([]*policyDomain.CompiledDocument, error)
}
