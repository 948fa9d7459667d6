package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/policies/internal/errors"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// ErrSignatureInvalid indicates a compiled document's signature does not
// match its content.
var ErrSignatureInvalid = apperrors.New("document signature invalid")

type documentSigner struct{}

// NewDocumentSigner creates an HMAC-based policy document signer using
// HKDF-SHA256 for key derivation and HMAC-SHA256 for signature generation.
func NewDocumentSigner() DocumentSigner {
	return &documentSigner{}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the
// configured secret. Info parameter: "policy-document-signing-v1" (versioned
// for future algorithm changes).
func (d *documentSigner) deriveSigningKey(secret []byte) ([]byte, error) {
	info := []byte("policy-document-signing-v1")
	reader := hkdf.New(sha256.New, secret, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalizeDocument converts a policy document to a canonical byte
// representation for signing. Every variable-length field is length-prefixed
// and every list is count-prefixed, so no item can move between adjacent
// lists (actions into resources, a statement into the suppressions) without
// changing the canonical bytes.
func (d *documentSigner) canonicalizeDocument(doc *policyDomain.PolicyDocument) ([]byte, error) {
	buf := make([]byte, 0, 1024)

	buf = appendLengthPrefixed(buf, []byte(doc.AccessClass))

	buf = appendCount(buf, len(doc.Statements))
	for _, stmt := range doc.Statements {
		buf = appendLengthPrefixed(buf, []byte(stmt.Sid))
		buf = appendLengthPrefixed(buf, []byte(stmt.Effect))
		buf = appendCount(buf, len(stmt.Actions))
		for _, action := range stmt.Actions {
			buf = appendLengthPrefixed(buf, []byte(action))
		}
		buf = appendCount(buf, len(stmt.Resources))
		for _, resource := range stmt.Resources {
			buf = appendLengthPrefixed(buf, []byte(resource))
		}
		if stmt.Condition != nil {
			// encoding/json sorts map keys, giving a deterministic encoding.
			conditionBytes, err := json.Marshal(stmt.Condition)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal condition: %w", err)
			}
			buf = appendLengthPrefixed(buf, conditionBytes)
		} else {
			buf = appendLengthPrefixed(buf, nil)
		}
	}

	buf = appendCount(buf, len(doc.Suppressions))
	for _, suppression := range doc.Suppressions {
		buf = appendLengthPrefixed(buf, []byte(suppression.RuleID))
		buf = appendLengthPrefixed(buf, []byte(suppression.Reason))
	}

	return buf, nil
}

// appendCount adds a 4-byte big-endian element count marking a list boundary.
func appendCount(buf []byte, n int) []byte {
	count := make([]byte, 4)
	binary.BigEndian.PutUint32(count, uint32(n))
	return append(buf, count...)
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
// Panics if data length exceeds uint32 max to prevent integer overflow.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	dataLen := len(data)
	if dataLen > 0xFFFFFFFF {
		panic("data length exceeds uint32 max")
	}
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(dataLen))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates an HMAC-SHA256 signature for the policy document.
func (d *documentSigner) Sign(secret []byte, doc *policyDomain.PolicyDocument) ([]byte, error) {
	signingKey, err := d.deriveSigningKey(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(signingKey)

	canonical, err := d.canonicalizeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks if the document signature is valid. Returns nil if valid,
// ErrSignatureInvalid if the document or signature was altered.
func (d *documentSigner) Verify(
	secret []byte,
	doc *policyDomain.PolicyDocument,
	signature []byte,
) error {
	expected, err := d.Sign(secret, doc)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(signature, expected) {
		return ErrSignatureInvalid
	}

	return nil
}

// zero overwrites sensitive key material in memory with zeros.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
