package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/policies/internal/metrics"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
	policyMocks "github.com/allisson/policies/internal/policy/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestNewCatalogUseCaseWithMetrics(t *testing.T) {
	mockUseCase := new(policyMocks.MockCatalogUseCase)
	mockMetrics := &mockBusinessMetrics{}

	decorator := NewCatalogUseCaseWithMetrics(mockUseCase, mockMetrics)

	assert.NotNil(t, decorator)
	assert.Implements(t, (*CatalogUseCase)(nil), decorator)
}

func TestCatalogMetricsDecorator_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCatalogUseCase)
		mockMetrics := &mockBusinessMetrics{}

		grants := validGrants()
		stored := &policyDomain.StoredCatalog{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "payments-service",
			Grants:    grants,
			CreatedAt: time.Now().UTC(),
		}

		mockUseCase.On("Create", ctx, "payments-service", grants).Return(stored, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "catalog", "catalog_create", "success").
			Return().Once()
		mockMetrics.On("RecordDuration", ctx, "catalog", "catalog_create", mock.AnythingOfType("time.Duration"), "success").
			Return().Once()

		decorator := NewCatalogUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Create(ctx, "payments-service", grants)

		assert.NoError(t, err)
		assert.Equal(t, stored, result)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCatalogUseCase)
		mockMetrics := &mockBusinessMetrics{}

		grants := validGrants()

		mockUseCase.On("Create", ctx, "payments-service", grants).Return(nil, assert.AnError).Once()
		mockMetrics.On("RecordOperation", ctx, "catalog", "catalog_create", "error").
			Return().Once()
		mockMetrics.On("RecordDuration", ctx, "catalog", "catalog_create", mock.AnythingOfType("time.Duration"), "error").
			Return().Once()

		decorator := NewCatalogUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Create(ctx, "payments-service", grants)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, result)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCatalogMetricsDecorator_Delete(t *testing.T) {
	ctx := context.Background()

	mockUseCase := new(policyMocks.MockCatalogUseCase)
	mockMetrics := &mockBusinessMetrics{}

	id := uuid.Must(uuid.NewV7())
	mockUseCase.On("Delete", ctx, id).Return(nil).Once()
	mockMetrics.On("RecordOperation", ctx, "catalog", "catalog_delete", "success").
		Return().Once()
	mockMetrics.On("RecordDuration", ctx, "catalog", "catalog_delete", mock.AnythingOfType("time.Duration"), "success").
		Return().Once()

	decorator := NewCatalogUseCaseWithMetrics(mockUseCase, mockMetrics)
	err := decorator.Delete(ctx, id)

	assert.NoError(t, err)
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestNewCompileUseCaseWithMetrics(t *testing.T) {
	mockUseCase := new(policyMocks.MockCompileUseCase)
	mockMetrics := &mockBusinessMetrics{}

	decorator := NewCompileUseCaseWithMetrics(mockUseCase, mockMetrics)

	assert.NotNil(t, decorator)
	assert.Implements(t, (*CompileUseCase)(nil), decorator)
}

func TestCompileMetricsDecorator_Compile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCompileUseCase)
		mockMetrics := &mockBusinessMetrics{}

		catalogID := uuid.Must(uuid.NewV7())
		identifiers := testIdentifierMap()
		result := &policyDomain.CompilationResult{}

		mockUseCase.On("Compile", ctx, catalogID, "payments-service", identifiers).
			Return(result, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "compile", "policy_compile", "success").
			Return().Once()
		mockMetrics.On("RecordDuration", ctx, "compile", "policy_compile", mock.AnythingOfType("time.Duration"), "success").
			Return().Once()

		decorator := NewCompileUseCaseWithMetrics(mockUseCase, mockMetrics)
		got, err := decorator.Compile(ctx, catalogID, "payments-service", identifiers)

		assert.NoError(t, err)
		assert.Equal(t, result, got)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := new(policyMocks.MockCompileUseCase)
		mockMetrics := &mockBusinessMetrics{}

		catalogID := uuid.Must(uuid.NewV7())
		identifiers := testIdentifierMap()

		mockUseCase.On("Compile", ctx, catalogID, "payments-service", identifiers).
			Return(nil, assert.AnError).Once()
		mockMetrics.On("RecordOperation", ctx, "compile", "policy_compile", "error").
			Return().Once()
		mockMetrics.On("RecordDuration", ctx, "compile", "policy_compile", mock.AnythingOfType("time.Duration"), "error").
			Return().Once()

		decorator := NewCompileUseCaseWithMetrics(mockUseCase, mockMetrics)
		got, err := decorator.Compile(ctx, catalogID, "payments-service", identifiers)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, got)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCompileMetricsDecorator_ListDocuments(t *testing.T) {
	ctx := context.Background()

	mockUseCase := new(policyMocks.MockCompileUseCase)
	mockMetrics := &mockBusinessMetrics{}

	documents := []*policyDomain.CompiledDocument{}
	mockUseCase.On("ListDocuments", ctx, "payments-service").Return(documents, nil).Once()
	mockMetrics.On("RecordOperation", ctx, "compile", "document_list", "success").
		Return().Once()
	mockMetrics.On("RecordDuration", ctx, "compile", "document_list", mock.AnythingOfType("time.Duration"), "success").
		Return().Once()

	decorator := NewCompileUseCaseWithMetrics(mockUseCase, mockMetrics)
	got, err := decorator.ListDocuments(ctx, "payments-service")

	assert.NoError(t, err)
	assert.Equal(t, documents, got)
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
