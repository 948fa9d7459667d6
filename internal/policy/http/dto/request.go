// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
	customValidation "github.com/allisson/policies/internal/validation"
)

// GrantPayload is the wire shape of a capability grant in catalog requests.
// Structural rules that span fields (wildcard versus justification, duplicate
// ids) are enforced by catalog construction, not here.
type GrantPayload struct {
	ID               string                         `json:"id"`
	AccessClass      string                         `json:"access_class"`
	Actions          []string                       `json:"actions"`
	ResourcePatterns []string                       `json:"resource_patterns"`
	Conditions       map[string]map[string][]string `json:"conditions,omitempty"`
	Justification    string                         `json:"justification,omitempty"`
}

// Validate checks the shape of a single grant payload.
func (g *GrantPayload) Validate() error {
	return validation.ValidateStruct(g,
		validation.Field(&g.ID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&g.AccessClass,
			validation.Required,
			validation.In(
				string(policyDomain.AccessClassRead),
				string(policyDomain.AccessClassWrite),
			),
		),
		validation.Field(&g.Actions,
			validation.Required,
			validation.Each(customValidation.ActionFormat),
		),
		validation.Field(&g.ResourcePatterns,
			validation.Required,
			validation.Each(customValidation.NotBlank),
		),
	)
}

// ToDomain converts the payload to a domain capability grant.
func (g *GrantPayload) ToDomain() policyDomain.CapabilityGrant {
	return policyDomain.CapabilityGrant{
		ID:               g.ID,
		AccessClass:      policyDomain.AccessClass(g.AccessClass),
		Actions:          g.Actions,
		ResourcePatterns: g.ResourcePatterns,
		Conditions:       g.Conditions,
		Justification:    g.Justification,
	}
}

// CreateCatalogRequest contains the parameters for creating a grant catalog.
type CreateCatalogRequest struct {
	Name   string         `json:"name"`
	Grants []GrantPayload `json:"grants"`
}

// Validate checks if the create catalog request is valid.
func (r *CreateCatalogRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Grants,
			validation.Required,
			validation.Length(1, 0),
		),
	)
}

// ToDomain converts the request grants to domain capability grants.
func (r *CreateCatalogRequest) ToDomain() []policyDomain.CapabilityGrant {
	grants := make([]policyDomain.CapabilityGrant, 0, len(r.Grants))
	for i := range r.Grants {
		grants = append(grants, r.Grants[i].ToDomain())
	}
	return grants
}

// CompileRequest contains the parameters for compiling a catalog into policy
// documents for a principal.
type CompileRequest struct {
	Principal   string            `json:"principal"`
	Identifiers map[string]string `json:"identifiers"`
}

// Validate checks if the compile request is valid.
func (r *CompileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Principal,
			validation.Required,
			customValidation.PrincipalName,
			validation.Length(1, 255),
		),
		validation.Field(&r.Identifiers, validation.By(validIdentifierMap)),
	)
}

// validIdentifierMap checks every identifier name and value in the map.
func validIdentifierMap(value interface{}) error {
	identifiers, ok := value.(map[string]string)
	if !ok {
		return validation.NewError("validation_identifier_map", "must be a string map")
	}
	for name, val := range identifiers {
		if err := customValidation.IdentifierName.Validate(name); err != nil {
			return validation.NewError(
				"validation_identifier_name",
				"identifier name "+name+" is invalid",
			)
		}
		if err := customValidation.NotBlank.Validate(val); err != nil {
			return validation.NewError(
				"validation_identifier_value",
				"identifier "+name+" must not be blank",
			)
		}
	}
	return nil
}
