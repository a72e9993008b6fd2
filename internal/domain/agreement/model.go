package agreement

import (
	"time"
)

// Dashboard category tags. Optional, and deliberately outside the
// fingerprint material: re-tagging a record must not change its hash.
const (
	CategorySourcing   = "Sourcing"
	CategoryOperations = "Operations"
	CategoryImpact     = "Impact"
)

// Agreement is a committed agreement or sustainability action. Text is
// encrypted at rest; EncryptedText carries the ciphertext across the
// repository boundary and is never serialized.
type Agreement struct {
	ID                int        `json:"id"`
	OwnerID           int        `json:"owner_id"`
	Text              string     `json:"text,omitempty"`
	EncryptedText     []byte     `json:"-"`
	Attachment        []byte     `json:"-"`
	Category          string     `json:"category,omitempty"`
	Hash              string     `json:"hash"`
	Countersigned     bool       `json:"countersigned"`
	CountersignerName *string    `json:"countersigner_name,omitempty"`
	CommittedAt       time.Time  `json:"committed_at"`
	CountersignedAt   *time.Time `json:"countersigned_at,omitempty"`
}

// ValidCategory reports whether tag is one of the known dashboard categories.
func ValidCategory(tag string) bool {
	switch tag {
	case CategorySourcing, CategoryOperations, CategoryImpact:
		return true
	}
	return false
}
