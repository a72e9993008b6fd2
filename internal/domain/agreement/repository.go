package agreement

import (
	"context"
)

// Repository is the persistence boundary for agreements. Implementations
// must make Create atomic (no partial row on failure) and MarkCountersigned
// a single conditional update so that exactly one concurrent signer wins.
type Repository interface {
	// Create inserts the agreement inside one transaction and fills in
	// ID and CommittedAt from the stored row. A fingerprint collision
	// returns ErrDuplicateHash.
	Create(ctx context.Context, a *Agreement) error

	// GetByHash returns the agreement with the given fingerprint hash,
	// ciphertext included, or ErrNotFound.
	GetByHash(ctx context.Context, hash string) (*Agreement, error)

	// ListByOwner returns every agreement belonging to ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID int) ([]Agreement, error)

	// MarkCountersigned transitions a pending agreement to countersigned,
	// recording the signer name and timestamp exactly once. Returns
	// ErrNotFound for an unknown hash and ErrAlreadySigned for a repeat.
	MarkCountersigned(ctx context.Context, hash, signerName string) (*Agreement, error)
}
