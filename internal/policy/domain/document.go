package domain

import (
	"encoding/json"
)

// Policy document constants.
const (
	// EffectAllow is the only effect the compiler emits; least-privilege
	// documents grant exactly what the catalog declares and nothing else.
	EffectAllow = "Allow"

	// PolicyVersion is the policy language version stamped on attachable
	// documents.
	PolicyVersion = "2012-10-17"

	// SuppressionRuleWildcardResource identifies the compliance-scanner rule
	// suppressed for statements that carry an unscoped wildcard resource.
	SuppressionRuleWildcardResource = "AwsSolutions-IAM5"
)

// Statement is one compiled permission entry within a policy document.
type Statement struct {
	Sid       string                         `json:"sid"`
	Effect    string                         `json:"effect"`
	Actions   []string                       `json:"actions"`
	Resources []string                       `json:"resources"`
	Condition map[string]map[string][]string `json:"condition,omitempty"`
}

// Suppression records the justification for an unavoidable broad-scope grant,
// intended for attachment to the policy resource's compliance-scanning
// metadata.
type Suppression struct {
	RuleID string `json:"rule_id"`
	Reason string `json:"reason"`
}

// PolicyDocument is the compiled output for one access class: an ordered
// sequence of statements plus the suppression entries derived from wildcard
// grants. Documents are created fresh by every compilation and never mutated
// afterwards.
type PolicyDocument struct {
	AccessClass  AccessClass   `json:"access_class"`
	Statements   []Statement   `json:"statements"`
	Suppressions []Suppression `json:"suppressions"`
}

// DocumentSet is the compiled READ/WRITE document pair for one catalog.
type DocumentSet struct {
	Read  *PolicyDocument `json:"read"`
	Write *PolicyDocument `json:"write"`
}

// iamStatement is the attachable wire shape of a statement.
type iamStatement struct {
	Sid       string                         `json:"Sid"`
	Effect    string                         `json:"Effect"`
	Action    []string                       `json:"Action"`
	Resource  []string                       `json:"Resource"`
	Condition map[string]map[string][]string `json:"Condition,omitempty"`
}

// iamDocument is the attachable wire shape of a policy document.
type iamDocument struct {
	Version   string         `json:"Version"`
	Statement []iamStatement `json:"Statement"`
}

// MarshalIAM renders the document in the policy-language JSON shape the
// provisioning layer attaches to the principal. Suppressions are compliance
// metadata, not policy content, so they are excluded here.
func (d *PolicyDocument) MarshalIAM() ([]byte, error) {
	doc := iamDocument{
		Version:   PolicyVersion,
		Statement: make([]iamStatement, 0, len(d.Statements)),
	}
	for _, stmt := range d.Statements {
		doc.Statement = append(doc.Statement, iamStatement{
			Sid:       stmt.Sid,
			Effect:    stmt.Effect,
			Action:    stmt.Actions,
			Resource:  stmt.Resources,
			Condition: stmt.Condition,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}
