package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// catalogUseCase implements CatalogUseCase.
type catalogUseCase struct {
	catalogRepo CatalogRepository
}

// NewCatalogUseCase creates a new catalog use case instance.
func NewCatalogUseCase(catalogRepo CatalogRepository) CatalogUseCase {
	return &catalogUseCase{catalogRepo: catalogRepo}
}

// Create validates the grants and persists them as a named catalog.
func (u *catalogUseCase) Create(
	ctx context.Context,
	name string,
	grants []policyDomain.CapabilityGrant,
) (*policyDomain.StoredCatalog, error) {
	// Construction-time validation; a CatalogError here means nothing is stored.
	catalog, err := policyDomain.NewCatalog(grants)
	if err != nil {
		return nil, err
	}

	stored := &policyDomain.StoredCatalog{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Grants:    catalog.Grants(),
		CreatedAt: time.Now().UTC(),
	}

	if err := u.catalogRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return stored, nil
}

// Get retrieves a stored catalog by its id.
func (u *catalogUseCase) Get(ctx context.Context, id uuid.UUID) (*policyDomain.StoredCatalog, error) {
	return u.catalogRepo.Get(ctx, id)
}

// List retrieves stored catalogs ordered by creation time with pagination.
func (u *catalogUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*policyDomain.StoredCatalog, error) {
	return u.catalogRepo.List(ctx, offset, limit)
}

// Delete removes a stored catalog by its id.
func (u *catalogUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.catalogRepo.Delete(ctx, id)
}
