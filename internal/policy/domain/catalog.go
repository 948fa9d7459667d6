package domain

// Catalog is the authoritative, ordered collection of capability grants for a
// principal. It is validated once at construction and immutable afterwards;
// catalog order determines statement numbering during compilation.
type Catalog struct {
	grants []CapabilityGrant
}

// NewCatalog validates the given grants and returns an immutable catalog.
// Every structural violation is collected before failing: duplicate grant ids,
// empty action or resource sets, and wildcard/justification mismatches are
// reported together in a single CatalogError.
func NewCatalog(grants []CapabilityGrant) (*Catalog, error) {
	var violations []string

	seen := make(map[string]struct{}, len(grants))
	for _, grant := range grants {
		violations = append(violations, grant.validate()...)

		if grant.ID == "" {
			continue
		}
		if _, duplicate := seen[grant.ID]; duplicate {
			violations = append(violations, "duplicate grant id "+quote(grant.ID))
			continue
		}
		seen[grant.ID] = struct{}{}
	}

	if len(violations) > 0 {
		return nil, &CatalogError{Violations: violations}
	}

	// Copy so later mutation of the caller's slice cannot reach the catalog.
	owned := make([]CapabilityGrant, len(grants))
	copy(owned, grants)

	return &Catalog{grants: owned}, nil
}

// Grants returns the catalog's grants in declaration order. The returned
// slice is a copy; the catalog itself stays immutable.
func (c *Catalog) Grants() []CapabilityGrant {
	grants := make([]CapabilityGrant, len(c.grants))
	copy(grants, c.grants)
	return grants
}

// Len returns the number of grants in the catalog.
func (c *Catalog) Len() int {
	return len(c.grants)
}

// quote wraps a value in double quotes for violation messages.
func quote(v string) string {
	return `"` + v + `"`
}
