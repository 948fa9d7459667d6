// Package service implements stateless policy services: the statement
// compiler that turns a grant catalog into access-class-partitioned policy
// documents, and the signer that authenticates compiled documents for the
// provisioning layer.
package service

import (
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// Compiler turns a grant catalog plus a resolved-identifier map into the
// READ/WRITE policy document pair. Implementations must be pure and
// re-entrant: compiling the same inputs twice yields byte-identical output,
// and concurrent compilations of independent catalogs need no coordination.
type Compiler interface {
	Compile(
		catalog *policyDomain.Catalog,
		identifiers map[string]string,
	) (*policyDomain.DocumentSet, error)
}

// DocumentSigner authenticates compiled policy documents so the provisioning
// layer can detect tampering between compilation and attachment.
type DocumentSigner interface {
	// Sign generates an HMAC-SHA256 signature over the document's canonical
	// encoding using a key derived from the given signing secret.
	Sign(secret []byte, doc *policyDomain.PolicyDocument) ([]byte, error)
	// Verify checks a signature produced by Sign. Returns nil if valid,
	// ErrSignatureInvalid if the document or signature was altered.
	Verify(secret []byte, doc *policyDomain.PolicyDocument, signature []byte) error
}
