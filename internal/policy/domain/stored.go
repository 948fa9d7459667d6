package domain

import (
	"time"

	"github.com/google/uuid"
)

// StoredCatalog is a persisted grant catalog: the deployment-configuration
// record from which policy documents are compiled. The grants are stored in
// declaration order and re-validated on every load before compilation.
type StoredCatalog struct {
	ID        uuid.UUID
	Name      string
	Grants    []CapabilityGrant
	CreatedAt time.Time
}

// CompiledDocument is a persisted compilation output for one access class,
// retrievable by the provisioning layer. The optional signature lets that
// layer verify the document was not altered between compilation and
// attachment.
type CompiledDocument struct {
	ID          uuid.UUID
	CatalogID   uuid.UUID
	Principal   string
	AccessClass AccessClass
	Document    PolicyDocument
	Signature   []byte
	CreatedAt   time.Time
}

// CompilationResult is the stored READ/WRITE pair produced by one compile
// operation.
type CompilationResult struct {
	Read  *CompiledDocument
	Write *CompiledDocument
}
