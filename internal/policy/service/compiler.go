package service

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	apperrors "github.com/allisson/policies/internal/errors"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// placeholderPattern matches {placeholder} segments in templated resource
// patterns (e.g. "arn:aws:dynamodb:{region}:{account}:table/{policyTable}").
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// statementCompiler implements Compiler. It holds no state; every compilation
// works only on its arguments.
type statementCompiler struct{}

// NewStatementCompiler creates the statement compiler service.
func NewStatementCompiler() Compiler {
	return &statementCompiler{}
}

// Compile transforms the catalog into the READ/WRITE document pair.
//
// Grants are partitioned by access class in catalog order, templated resource
// patterns are resolved against the identifier map, and one statement is
// emitted per grant with a deterministic sid (service tag + access class +
// two-digit sequence within that pairing, e.g. "DDBWrite01"). Wildcard
// resources append a suppression entry carrying the grant's justification.
//
// Compilation is all-or-nothing: any unresolved placeholder aborts with a
// ResolutionError listing every missing identifier, and any post-compilation
// invariant violation aborts with a ValidationError. A partial document is
// never returned.
func (c *statementCompiler) Compile(
	catalog *policyDomain.Catalog,
	identifiers map[string]string,
) (*policyDomain.DocumentSet, error) {
	if catalog == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "catalog is required")
	}

	grants := catalog.Grants()

	// Resolve every templated pattern up front so a ResolutionError reports
	// the complete set of missing identifiers in one pass.
	resolved, err := resolvePatterns(grants, identifiers)
	if err != nil {
		return nil, err
	}

	set := &policyDomain.DocumentSet{
		Read: &policyDomain.PolicyDocument{
			AccessClass:  policyDomain.AccessClassRead,
			Statements:   []policyDomain.Statement{},
			Suppressions: []policyDomain.Suppression{},
		},
		Write: &policyDomain.PolicyDocument{
			AccessClass:  policyDomain.AccessClassWrite,
			Statements:   []policyDomain.Statement{},
			Suppressions: []policyDomain.Suppression{},
		},
	}

	// Sequence counters per (service tag, access class); sids are a pure
	// function of catalog order.
	sequences := make(map[string]int)

	for i, grant := range grants {
		doc := set.Read
		if grant.AccessClass == policyDomain.AccessClassWrite {
			doc = set.Write
		}

		tag := grant.ServiceTag()
		seqKey := tag + "/" + string(grant.AccessClass)
		sequences[seqKey]++

		statement := policyDomain.Statement{
			Sid:       fmt.Sprintf("%s%s%02d", tag, titleOf(grant.AccessClass), sequences[seqKey]),
			Effect:    policyDomain.EffectAllow,
			Actions:   slices.Clone(grant.Actions),
			Resources: resolved[i],
			Condition: cloneConditions(grant.Conditions),
		}
		doc.Statements = append(doc.Statements, statement)

		if slices.Contains(resolved[i], policyDomain.WildcardResource) {
			appendSuppression(doc, policyDomain.Suppression{
				RuleID: policyDomain.SuppressionRuleWildcardResource,
				Reason: grant.Justification,
			})
		}
	}

	if err := validateDocuments(set, grants); err != nil {
		return nil, err
	}

	return set, nil
}

// resolvePatterns substitutes identifier values into every templated resource
// pattern, returning the resolved patterns indexed by grant position. Missing
// identifiers are collected across all grants before failing.
func resolvePatterns(
	grants []policyDomain.CapabilityGrant,
	identifiers map[string]string,
) ([][]string, error) {
	resolved := make([][]string, len(grants))

	var missing []string
	var violations []string
	seenMissing := make(map[string]struct{})

	for i, grant := range grants {
		patterns := make([]string, 0, len(grant.ResourcePatterns))
		for _, pattern := range grant.ResourcePatterns {
			result := placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
				name := match[1 : len(match)-1]
				value, ok := identifiers[name]
				if !ok {
					if _, reported := seenMissing[name]; !reported {
						seenMissing[name] = struct{}{}
						missing = append(missing, name)
					}
					violations = append(violations, fmt.Sprintf(
						"grant %q: no value for placeholder %q in %q", grant.ID, name, pattern))
					return match
				}
				return value
			})
			patterns = append(patterns, result)
		}
		resolved[i] = patterns
	}

	if len(missing) > 0 {
		return nil, &policyDomain.ResolutionError{Missing: missing, Violations: violations}
	}

	return resolved, nil
}

// appendSuppression adds the suppression to the document unless an identical
// (rule id, reason) pair is already recorded.
func appendSuppression(doc *policyDomain.PolicyDocument, s policyDomain.Suppression) {
	for _, existing := range doc.Suppressions {
		if existing == s {
			return
		}
	}
	doc.Suppressions = append(doc.Suppressions, s)
}

// validateDocuments enforces the post-compilation invariants: unique sids per
// document, no empty document for a non-empty partition, and every grant
// action covered by a statement in the grant's document.
func validateDocuments(set *policyDomain.DocumentSet, grants []policyDomain.CapabilityGrant) error {
	var violations []string

	for _, doc := range []*policyDomain.PolicyDocument{set.Read, set.Write} {
		seen := make(map[string]struct{}, len(doc.Statements))
		for _, stmt := range doc.Statements {
			if _, duplicate := seen[stmt.Sid]; duplicate {
				violations = append(violations, fmt.Sprintf(
					"%s document: duplicate sid %q", strings.ToLower(string(doc.AccessClass)), stmt.Sid))
			}
			seen[stmt.Sid] = struct{}{}
		}
	}

	partitionSizes := map[policyDomain.AccessClass]int{}
	for _, grant := range grants {
		partitionSizes[grant.AccessClass]++

		doc := set.Read
		if grant.AccessClass == policyDomain.AccessClassWrite {
			doc = set.Write
		}
		for _, action := range grant.Actions {
			if !documentCoversAction(doc, action) {
				violations = append(violations, fmt.Sprintf(
					"grant %q: action %q is not covered by any statement", grant.ID, action))
			}
		}
	}

	if partitionSizes[policyDomain.AccessClassRead] > 0 && len(set.Read.Statements) == 0 {
		violations = append(violations, "read document is empty for a non-empty partition")
	}
	if partitionSizes[policyDomain.AccessClassWrite] > 0 && len(set.Write.Statements) == 0 {
		violations = append(violations, "write document is empty for a non-empty partition")
	}

	if len(violations) > 0 {
		return &policyDomain.ValidationError{Violations: violations}
	}

	return nil
}

// documentCoversAction reports whether any statement in the document lists
// the action.
func documentCoversAction(doc *policyDomain.PolicyDocument, action string) bool {
	for _, stmt := range doc.Statements {
		if slices.Contains(stmt.Actions, action) {
			return true
		}
	}
	return false
}

// cloneConditions deep-copies a grant's condition map so compiled documents
// never alias catalog data.
func cloneConditions(conditions map[string]map[string][]string) map[string]map[string][]string {
	if conditions == nil {
		return nil
	}
	cloned := make(map[string]map[string][]string, len(conditions))
	for operator, keys := range conditions {
		clonedKeys := make(map[string][]string, len(keys))
		for key, values := range keys {
			clonedKeys[key] = slices.Clone(values)
		}
		cloned[operator] = clonedKeys
	}
	return cloned
}

// titleOf returns the access class in sid form.
func titleOf(class policyDomain.AccessClass) string {
	if class == policyDomain.AccessClassWrite {
		return "Write"
	}
	return "Read"
}
