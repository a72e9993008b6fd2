package session

import (
	"context"
)

type Repository interface {
	// Validate returns the account ID for an unexpired session token hash.
	Validate(ctx context.Context, tokenHash string) (int, error)
}
