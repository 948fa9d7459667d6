// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// CatalogResponse represents a stored grant catalog in API responses.
type CatalogResponse struct {
	ID        string                         `json:"id"`
	Name      string                         `json:"name"`
	Grants    []policyDomain.CapabilityGrant `json:"grants"`
	CreatedAt time.Time                      `json:"created_at"`
}

// MapCatalogToResponse converts a stored catalog to an API response.
func MapCatalogToResponse(catalog *policyDomain.StoredCatalog) CatalogResponse {
	return CatalogResponse{
		ID:        catalog.ID.String(),
		Name:      catalog.Name,
		Grants:    catalog.Grants,
		CreatedAt: catalog.CreatedAt,
	}
}

// ListCatalogsResponse represents a paginated list of catalogs in API responses.
type ListCatalogsResponse struct {
	Data []CatalogResponse `json:"data"`
}

// MapCatalogsToListResponse converts a slice of stored catalogs to a list response.
func MapCatalogsToListResponse(catalogs []*policyDomain.StoredCatalog) ListCatalogsResponse {
	data := make([]CatalogResponse, 0, len(catalogs))
	for _, catalog := range catalogs {
		data = append(data, MapCatalogToResponse(catalog))
	}

	return ListCatalogsResponse{
		Data: data,
	}
}

// CompiledDocumentResponse represents a compiled policy document in API
// responses. The signature is base64-encoded.
type CompiledDocumentResponse struct {
	ID          string                      `json:"id"`
	CatalogID   string                      `json:"catalog_id"`
	Principal   string                      `json:"principal"`
	AccessClass string                      `json:"access_class"`
	Document    policyDomain.PolicyDocument `json:"document"`
	Signature   []byte                      `json:"signature,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// MapDocumentToResponse converts a compiled document to an API response.
func MapDocumentToResponse(document *policyDomain.CompiledDocument) CompiledDocumentResponse {
	return CompiledDocumentResponse{
		ID:          document.ID.String(),
		CatalogID:   document.CatalogID.String(),
		Principal:   document.Principal,
		AccessClass: string(document.AccessClass),
		Document:    document.Document,
		Signature:   document.Signature,
		CreatedAt:   document.CreatedAt,
	}
}

// CompilationResponse represents the stored READ/WRITE document pair produced
// by one compile operation.
type CompilationResponse struct {
	Read  CompiledDocumentResponse `json:"read"`
	Write CompiledDocumentResponse `json:"write"`
}

// MapCompilationToResponse converts a compilation result to an API response.
func MapCompilationToResponse(result *policyDomain.CompilationResult) CompilationResponse {
	return CompilationResponse{
		Read:  MapDocumentToResponse(result.Read),
		Write: MapDocumentToResponse(result.Write),
	}
}

// ListDocumentsResponse represents a list of compiled documents in API responses.
type ListDocumentsResponse struct {
	Data []CompiledDocumentResponse `json:"data"`
}

// MapDocumentsToListResponse converts a slice of compiled documents to a list response.
func MapDocumentsToListResponse(documents []*policyDomain.CompiledDocument) ListDocumentsResponse {
	data := make([]CompiledDocumentResponse, 0, len(documents))
	for _, document := range documents {
		data = append(data, MapDocumentToResponse(document))
	}

	return ListDocumentsResponse{
		Data: data,
	}
}
