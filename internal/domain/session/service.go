package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/exp/slog"
)

// Servicer validates bearer tokens issued by the account/login collaborator.
// Session issuance lives outside this service; only validation is needed to
// resolve an owner for the commit and dashboard paths.
type Servicer interface {
	Validate(ctx context.Context, token string) (int, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "session_service"),
	}
}

// Validate resolves a bearer token to the owning account ID. Only the
// SHA-256 of the token is ever stored or compared.
func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	tokenHash := sha256.Sum256([]byte(token))
	return s.repo.Validate(ctx, hex.EncodeToString(tokenHash[:]))
}
