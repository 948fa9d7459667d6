// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/policies/internal/errors"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

var (
	// principalRegex matches principal names like payments-service.
	principalRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	// identifierRegex matches resolved-identifier names like policyTable.
	identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// ActionFormat validates capability actions of the form service:Verb,
// service:Get* or service:*. The format itself is owned by the domain.
var ActionFormat = validation.NewStringRuleWithError(
	policyDomain.ValidAction,
	validation.NewError("validation_action_format", "must be of the form service:Verb or service:*"),
)

// PrincipalName validates principal names (lowercase alphanumeric with hyphens).
var PrincipalName = validation.NewStringRuleWithError(
	func(s string) bool {
		return principalRegex.MatchString(s)
	},
	validation.NewError("validation_principal_name", "must be lowercase alphanumeric with hyphens"),
)

// IdentifierName validates resolved-identifier names (letter followed by
// letters, digits or underscores).
var IdentifierName = validation.NewStringRuleWithError(
	func(s string) bool {
		return identifierRegex.MatchString(s)
	},
	validation.NewError("validation_identifier_name", "must start with a letter and contain only letters, digits or underscores"),
)
