// Package repository implements data persistence for grant catalogs and
// compiled policy documents. Repositories support both PostgreSQL and MySQL,
// storing grants and documents as JSON columns.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/allisson/policies/internal/database"
	apperrors "github.com/allisson/policies/internal/errors"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// PostgreSQLCatalogRepository implements StoredCatalog persistence for PostgreSQL databases.
type PostgreSQLCatalogRepository struct {
	db *sql.DB
}

// Create inserts a new grant catalog into the PostgreSQL database.
func (p *PostgreSQLCatalogRepository) Create(ctx context.Context, catalog *policyDomain.StoredCatalog) error {
	querier := database.GetTx(ctx, p.db)

	grants, err := json.Marshal(catalog.Grants)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal catalog grants")
	}

	query := `INSERT INTO catalogs (id, name, grants, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err = querier.ExecContext(
		ctx,
		query,
		catalog.ID,
		catalog.Name,
		grants,
		catalog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create catalog")
	}
	return nil
}

// Get retrieves a grant catalog by its ID.
func (p *PostgreSQLCatalogRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*policyDomain.StoredCatalog, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, grants, created_at
			  FROM catalogs
			  WHERE id = $1
			  LIMIT 1`

	var catalog policyDomain.StoredCatalog
	var grants []byte
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&catalog.ID,
		&catalog.Name,
		&grants,
		&catalog.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get catalog")
	}

	if err := json.Unmarshal(grants, &catalog.Grants); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal catalog grants")
	}

	return &catalog, nil
}

// List retrieves grant catalogs ordered by creation time descending.
func (p *PostgreSQLCatalogRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*policyDomain.StoredCatalog, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, grants, created_at
			  FROM catalogs
			  ORDER BY created_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list catalogs")
	}
	defer func() { _ = rows.Close() }()

	catalogs := []*policyDomain.StoredCatalog{}
	for rows.Next() {
		var catalog policyDomain.StoredCatalog
		var grants []byte
		if err := rows.Scan(&catalog.ID, &catalog.Name, &grants, &catalog.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan catalog")
		}
		if err := json.Unmarshal(grants, &catalog.Grants); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal catalog grants")
		}
		catalogs = append(catalogs, &catalog)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate catalogs")
	}

	return catalogs, nil
}

// Delete removes a grant catalog by its ID.
func (p *PostgreSQLCatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM catalogs WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete catalog")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted catalog")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// NewPostgreSQLCatalogRepository creates a new PostgreSQL StoredCatalog repository instance.
func NewPostgreSQLCatalogRepository(db *sql.DB) *PostgreSQLCatalogRepository {
	return &PostgreSQLCatalogRepository{db: db}
}
