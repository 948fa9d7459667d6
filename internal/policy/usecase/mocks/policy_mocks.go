// Package mocks provides mock implementations for testing policy use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// MockCatalogRepository is a mock implementation of CatalogRepository for testing.
type MockCatalogRepository struct {
	mock.Mock
}

// Create mocks the Create method of CatalogRepository.
func (m *MockCatalogRepository) Create(ctx context.Context, catalog *policyDomain.StoredCatalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

// Get mocks the Get method of CatalogRepository.
func (m *MockCatalogRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*policyDomain.StoredCatalog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.StoredCatalog), args.Error(1)
}

// List mocks the List method of CatalogRepository.
func (m *MockCatalogRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*policyDomain.StoredCatalog, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policyDomain.StoredCatalog), args.Error(1)
}

// Delete mocks the Delete method of CatalogRepository.
func (m *MockCatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDocumentRepository is a mock implementation of DocumentRepository for testing.
type MockDocumentRepository struct {
	mock.Mock
}

// Create mocks the Create method of DocumentRepository.
func (m *MockDocumentRepository) Create(ctx context.Context, document *policyDomain.CompiledDocument) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

// ListByPrincipal mocks the ListByPrincipal method of DocumentRepository.
func (m *MockDocumentRepository) ListByPrincipal(
	ctx context.Context,
	principal string,
) ([]*policyDomain.CompiledDocument, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policyDomain.CompiledDocument), args.Error(1)
}

// MockExporter is a mock implementation of Exporter for testing.
type MockExporter struct {
	mock.Mock
}

// Export mocks the Export method of Exporter.
func (m *MockExporter) Export(
	ctx context.Context,
	principal string,
	set *policyDomain.DocumentSet,
) error {
	args := m.Called(ctx, principal, set)
	return args.Error(0)
}

// MockCompiler is a mock implementation of the statement compiler for testing.
type MockCompiler struct {
	mock.Mock
}

// Compile mocks the Compile method of Compiler.
func (m *MockCompiler) Compile(
	catalog *policyDomain.Catalog,
	identifiers map[string]string,
) (*policyDomain.DocumentSet, error) {
	args := m.Called(catalog, identifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.DocumentSet), args.Error(1)
}

// MockCatalogUseCase is a mock implementation of CatalogUseCase for testing.
type MockCatalogUseCase struct {
	mock.Mock
}

// Create mocks the Create method of CatalogUseCase.
func (m *MockCatalogUseCase) Create(
	ctx context.Context,
	name string,
	grants []policyDomain.CapabilityGrant,
) (*policyDomain.StoredCatalog, error) {
	args := m.Called(ctx, name, grants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.StoredCatalog), args.Error(1)
}

// Get mocks the Get method of CatalogUseCase.
func (m *MockCatalogUseCase) Get(
	ctx context.Context,
	id uuid.UUID,
) (*policyDomain.StoredCatalog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.StoredCatalog), args.Error(1)
}

// List mocks the List method of CatalogUseCase.
func (m *MockCatalogUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*policyDomain.StoredCatalog, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policyDomain.StoredCatalog), args.Error(1)
}

// Delete mocks the Delete method of CatalogUseCase.
func (m *MockCatalogUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompileUseCase is a mock implementation of CompileUseCase for testing.
type MockCompileUseCase struct {
	mock.Mock
}

// Compile mocks the Compile method of CompileUseCase.
func (m *MockCompileUseCase) Compile(
	ctx context.Context,
	catalogID uuid.UUID,
	principal string,
	identifiers map[string]string,
) (*policyDomain.CompilationResult, error) {
	args := m.Called(ctx, catalogID, principal, identifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.CompilationResult), args.Error(1)
}

// ListDocuments mocks the ListDocuments method of CompileUseCase.
func (m *MockCompileUseCase) ListDocuments(
	ctx context.Context,
	principal string,
) ([]*policyDomain.CompiledDocument, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policyDomain.CompiledDocument), args.Error(1)
}

// MockDocumentSigner is a mock implementation of DocumentSigner for testing.
type MockDocumentSigner struct {
	mock.Mock
}

// Sign mocks the Sign method of DocumentSigner.
func (m *MockDocumentSigner) Sign(secret []byte, doc *policyDomain.PolicyDocument) ([]byte, error) {
	args := m.Called(secret, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Verify mocks the Verify method of DocumentSigner.
func (m *MockDocumentSigner) Verify(secret []byte, doc *policyDomain.PolicyDocument, signature []byte) error {
	args := m.Called(secret, doc, signature)
	return args.Error(0)
}
