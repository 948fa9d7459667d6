package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/policies/internal/database"
	apperrors "github.com/allisson/policies/internal/errors"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// MySQLDocumentRepository implements CompiledDocument persistence for MySQL databases.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// Create inserts a compiled policy document into the MySQL database.
func (m *MySQLDocumentRepository) Create(
	ctx context.Context,
	document *policyDomain.CompiledDocument,
) error {
	querier := database.GetTx(ctx, m.db)

	doc, err := json.Marshal(document.Document)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal policy document")
	}

	query := `INSERT INTO compiled_documents (id, catalog_id, principal, access_class, document, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		document.ID,
		document.CatalogID,
		document.Principal,
		document.AccessClass,
		doc,
		document.Signature,
		document.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create compiled document")
	}
	return nil
}

// ListByPrincipal retrieves compiled documents for a principal, newest first.
func (m *MySQLDocumentRepository) ListByPrincipal(
	ctx context.Context,
	principal string,
) ([]*policyDomain.CompiledDocument, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, catalog_id, principal, access_class, document, signature, created_at
			  FROM compiled_documents
			  WHERE principal = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, principal)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list compiled documents")
	}
	defer func() { _ = rows.Close() }()

	documents := []*policyDomain.CompiledDocument{}
	for rows.Next() {
		var document policyDomain.CompiledDocument
		var doc []byte
		err := rows.Scan(
			&document.ID,
			&document.CatalogID,
			&document.Principal,
			&document.AccessClass,
			&doc,
			&document.Signature,
			&document.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan compiled document")
		}
		if err := json.Unmarshal(doc, &document.Document); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal policy document")
		}
		documents = append(documents, &document)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate compiled documents")
	}

	return documents, nil
}

// NewMySQLDocumentRepository creates a new MySQL CompiledDocument repository instance.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}
