package postgres

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	var userID int
	err := r.db.Pool().QueryRow(ctx,
		`SELECT user_id FROM sessions
         WHERE token_hash = decode($1, 'hex') AND expires_at > NOW()`,
		tokenHash).Scan(&userID)

	if err != nil {
		return 0, fmt.Errorf("invalid session")
	}
	return userID, nil
}
