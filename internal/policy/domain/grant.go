// Package domain defines the capability-grant data model and the compiled
// policy-document model for least-privilege policy synthesis.
//
// A capability grant declares one required permission unit for an automated
// principal: an ordered action set, the resource scope those actions apply to,
// optional conditions, and a justification whenever the scope cannot be
// narrowed below a wildcard. Grants are assembled into an immutable Catalog
// and compiled into two policy documents, one per access class.
package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// AccessClass partitions grants into non-mutating (READ) and mutating (WRITE)
// sets. Each class compiles into its own policy document.
type AccessClass string

// Supported access classes.
const (
	AccessClassRead  AccessClass = "READ"
	AccessClassWrite AccessClass = "WRITE"
)

// Valid reports whether the access class is one of the supported values.
func (a AccessClass) Valid() bool {
	return a == AccessClassRead || a == AccessClassWrite
}

// WildcardResource is the unscoped resource pattern used when the target
// service does not support resource-level scoping. Any grant carrying it
// must declare a justification.
const WildcardResource = "*"

// actionPattern matches action identifiers of the form "service:Verb" or
// "service:*" (e.g. "dynamodb:PutItem", "ec2:Describe*").
var actionPattern = regexp.MustCompile(`^[a-z0-9-]+:(\*|[A-Za-z0-9]+\*?)$`)

// ValidAction reports whether s is a well-formed action identifier. It is
// the single definition of the action format; input layers validate against
// it instead of carrying their own copy.
func ValidAction(s string) bool {
	return actionPattern.MatchString(s)
}

// CapabilityGrant is one declared unit of required permission.
type CapabilityGrant struct {
	// ID is a stable short identifier, unique within the catalog.
	ID string `json:"id"`
	// AccessClass determines which output document receives the statement.
	AccessClass AccessClass `json:"access_class"`
	// Actions is a non-empty ordered set of "service:Verb" identifiers.
	Actions []string `json:"actions"`
	// ResourcePatterns is a non-empty ordered set of resource scopes: a
	// fully-qualified identifier, a templated identifier with {placeholder}
	// segments resolved at compile time, or the wildcard "*".
	ResourcePatterns []string `json:"resource_patterns"`
	// Conditions optionally constrains when the statement applies, keyed by
	// condition operator, then condition key, to expected values.
	Conditions map[string]map[string][]string `json:"conditions,omitempty"`
	// Justification explains an unavoidable wildcard resource scope. Required
	// non-empty when any resource pattern is the wildcard, forbidden otherwise.
	Justification string `json:"justification,omitempty"`
}

// HasWildcardResource reports whether any resource pattern is the unscoped
// wildcard.
func (g *CapabilityGrant) HasWildcardResource() bool {
	for _, pattern := range g.ResourcePatterns {
		if pattern == WildcardResource {
			return true
		}
	}
	return false
}

// serviceTags maps action service prefixes to the short semantic tag used in
// statement sids. Services without an entry fall back to a capitalized form
// of the prefix.
var serviceTags = map[string]string{
	"dynamodb":       "DDB",
	"s3":             "S3",
	"sqs":            "SQS",
	"sns":            "SNS",
	"ec2":            "EC2",
	"kms":            "KMS",
	"ssm":            "SSM",
	"sts":            "STS",
	"iam":            "IAM",
	"logs":           "Logs",
	"lambda":         "Lambda",
	"events":         "Events",
	"secretsmanager": "Secrets",
	"cloudwatch":     "CW",
	"kinesis":        "Kinesis",
	"firehose":       "Firehose",
	"xray":           "XRay",
}

// ServiceTag derives the short semantic tag used for sid numbering from the
// grant's first action (e.g. "dynamodb:PutItem" yields "DDB").
func (g *CapabilityGrant) ServiceTag() string {
	if len(g.Actions) == 0 {
		return ""
	}
	service, _, found := strings.Cut(g.Actions[0], ":")
	if !found || service == "" {
		return ""
	}
	if tag, ok := serviceTags[service]; ok {
		return tag
	}
	return strings.ToUpper(service[:1]) + service[1:]
}

// validate returns every structural violation found in the grant. The slice
// is empty for a valid grant.
func (g *CapabilityGrant) validate() []string {
	var violations []string

	if strings.TrimSpace(g.ID) == "" {
		violations = append(violations, "grant id must not be empty")
	}
	if !g.AccessClass.Valid() {
		violations = append(violations, fmt.Sprintf(
			"grant %q: access class must be READ or WRITE, got %q", g.ID, g.AccessClass))
	}

	if len(g.Actions) == 0 {
		violations = append(violations, fmt.Sprintf("grant %q: actions must not be empty", g.ID))
	}
	for _, action := range g.Actions {
		if !actionPattern.MatchString(action) {
			violations = append(violations, fmt.Sprintf(
				"grant %q: action %q must have the form service:Verb or service:*", g.ID, action))
		}
	}

	if len(g.ResourcePatterns) == 0 {
		violations = append(violations, fmt.Sprintf(
			"grant %q: resource patterns must not be empty", g.ID))
	}
	for _, pattern := range g.ResourcePatterns {
		if strings.TrimSpace(pattern) == "" {
			violations = append(violations, fmt.Sprintf(
				"grant %q: resource pattern must not be blank", g.ID))
		}
	}

	// A wildcard scope without justification is silent scope creep; a
	// justification without a wildcard is a dead annotation.
	hasWildcard := g.HasWildcardResource()
	hasJustification := strings.TrimSpace(g.Justification) != ""
	if hasWildcard && !hasJustification {
		violations = append(violations, fmt.Sprintf(
			"grant %q: wildcard resource pattern requires a justification", g.ID))
	}
	if !hasWildcard && hasJustification {
		violations = append(violations, fmt.Sprintf(
			"grant %q: justification is only allowed with a wildcard resource pattern", g.ID))
	}

	return violations
}
