package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/policies/internal/database"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
	policyService "github.com/allisson/policies/internal/policy/service"
)

// compileUseCase implements CompileUseCase.
type compileUseCase struct {
	txManager     database.TxManager
	catalogRepo   CatalogRepository
	documentRepo  DocumentRepository
	compiler      policyService.Compiler
	signer        policyService.DocumentSigner
	exporter      Exporter
	signingSecret []byte
}

// NewCompileUseCase creates a new compile use case instance. The signing
// secret and exporter are optional; nil disables the respective step.
func NewCompileUseCase(
	txManager database.TxManager,
	catalogRepo CatalogRepository,
	documentRepo DocumentRepository,
	compiler policyService.Compiler,
	signer policyService.DocumentSigner,
	exporter Exporter,
	signingSecret []byte,
) CompileUseCase {
	return &compileUseCase{
		txManager:     txManager,
		catalogRepo:   catalogRepo,
		documentRepo:  documentRepo,
		compiler:      compiler,
		signer:        signer,
		exporter:      exporter,
		signingSecret: signingSecret,
	}
}

// Compile loads the catalog, compiles it, and stores the signed READ/WRITE
// document pair for the principal. The two inserts share one transaction so a
// failure never leaves a partial pair behind.
func (u *compileUseCase) Compile(
	ctx context.Context,
	catalogID uuid.UUID,
	principal string,
	identifiers map[string]string,
) (*policyDomain.CompilationResult, error) {
	stored, err := u.catalogRepo.Get(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	// Re-validate on load: stored grants predate any validation rule added
	// since they were written.
	catalog, err := policyDomain.NewCatalog(stored.Grants)
	if err != nil {
		return nil, err
	}

	set, err := u.compiler.Compile(catalog, identifiers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &policyDomain.CompilationResult{}

	result.Read, err = u.buildDocument(stored.ID, principal, set.Read, now)
	if err != nil {
		return nil, err
	}
	result.Write, err = u.buildDocument(stored.ID, principal, set.Write, now)
	if err != nil {
		return nil, err
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := u.documentRepo.Create(txCtx, result.Read); err != nil {
			return err
		}
		return u.documentRepo.Create(txCtx, result.Write)
	})
	if err != nil {
		return nil, err
	}

	if u.exporter != nil {
		if err := u.exporter.Export(ctx, principal, set); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// buildDocument wraps a compiled document for storage, signing it when a
// signing secret is configured.
func (u *compileUseCase) buildDocument(
	catalogID uuid.UUID,
	principal string,
	doc *policyDomain.PolicyDocument,
	createdAt time.Time,
) (*policyDomain.CompiledDocument, error) {
	var signature []byte
	if len(u.signingSecret) > 0 {
		var err error
		signature, err = u.signer.Sign(u.signingSecret, doc)
		if err != nil {
			return nil, err
		}
	}

	return &policyDomain.CompiledDocument{
		ID:          uuid.Must(uuid.NewV7()),
		CatalogID:   catalogID,
		Principal:   principal,
		AccessClass: doc.AccessClass,
		Document:    *doc,
		Signature:   signature,
		CreatedAt:   createdAt,
	}, nil
}

// ListDocuments returns the stored compiled documents for a principal.
func (u *compileUseCase) ListDocuments(
	ctx context.Context,
	principal string,
) ([]*policyDomain.CompiledDocument, error) {
	return u.documentRepo.ListByPrincipal(ctx, principal)
}
