package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"agreementlog/internal/domain/agreement"
)

// uniqueViolation is the Postgres error code raised when the fingerprint
// uniqueness constraint rejects a duplicate insert.
const uniqueViolation = "23505"

const agreementColumns = `id, owner_id, encrypted_text, attachment, category,
	fingerprint_hash, countersigned, countersigner_name, committed_at, countersigned_at`

type AgreementRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewAgreementRepository(db *Storage, log *slog.Logger) *AgreementRepository {
	return &AgreementRepository{
		db:  db,
		log: log.With("component", "agreement_repository"),
	}
}

// Create inserts the agreement in one transaction and reads back the
// database-assigned id and commit timestamp, so the caller anchors exactly
// what was persisted. The unique index on fingerprint_hash is the duplicate
// guard; no application-level locking.
func (r *AgreementRepository) Create(ctx context.Context, a *agreement.Agreement) error {
	const query = `
		INSERT INTO agreements (owner_id, encrypted_text, attachment, category, fingerprint_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, committed_at`

	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var category any
	if a.Category != "" {
		category = a.Category
	}

	err = tx.QueryRow(ctx, query,
		a.OwnerID, a.EncryptedText, a.Attachment, category, a.Hash,
	).Scan(&a.ID, &a.CommittedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return agreement.ErrDuplicateHash
		}
		r.log.Error("failed to insert agreement", "owner_id", a.OwnerID, "error", err)
		return fmt.Errorf("insert agreement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *AgreementRepository) GetByHash(ctx context.Context, hash string) (*agreement.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE fingerprint_hash = $1`

	row := r.db.Pool().QueryRow(ctx, query, hash)

	a, err := r.scanAgreement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Expected and frequent (as-you-type lookups); not logged.
			return nil, agreement.ErrNotFound
		}
		r.log.Error("failed to get agreement", "hash", hash, "error", err)
		return nil, fmt.Errorf("get agreement: %w", err)
	}

	return a, nil
}

func (r *AgreementRepository) ListByOwner(ctx context.Context, ownerID int) ([]agreement.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements
		WHERE owner_id = $1 ORDER BY committed_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("failed to list agreements", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list agreements: %w", err)
	}
	defer rows.Close()

	var agreements []agreement.Agreement
	for rows.Next() {
		a, err := r.scanAgreement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agreement: %w", err)
		}
		agreements = append(agreements, *a)
	}

	return agreements, rows.Err()
}

// MarkCountersigned performs the single pending -> countersigned transition.
// The conditional UPDATE is the concurrency guard: of any number of racing
// signers, exactly one matches countersigned = FALSE.
func (r *AgreementRepository) MarkCountersigned(ctx context.Context, hash, signerName string) (*agreement.Agreement, error) {
	query := `
		UPDATE agreements
		SET countersigned = TRUE, countersigner_name = $2, countersigned_at = NOW()
		WHERE fingerprint_hash = $1 AND countersigned = FALSE
		RETURNING ` + agreementColumns

	row := r.db.Pool().QueryRow(ctx, query, hash, signerName)

	a, err := r.scanAgreement(row)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("failed to countersign agreement", "hash", hash, "error", err)
		return nil, fmt.Errorf("countersign agreement: %w", err)
	}

	// Zero rows: either the hash is unknown or someone signed first.
	var signed bool
	err = r.db.Pool().QueryRow(ctx,
		`SELECT countersigned FROM agreements WHERE fingerprint_hash = $1`, hash,
	).Scan(&signed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, agreement.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to resolve countersign state", "hash", hash, "error", err)
		return nil, fmt.Errorf("resolve countersign state: %w", err)
	}
	if signed {
		return nil, agreement.ErrAlreadySigned
	}
	return nil, agreement.ErrNotFound
}

func (r *AgreementRepository) scanAgreement(row interface {
	Scan(dest ...interface{}) error
}) (*agreement.Agreement, error) {
	var a agreement.Agreement
	var category *string

	err := row.Scan(
		&a.ID, &a.OwnerID, &a.EncryptedText, &a.Attachment, &category,
		&a.Hash, &a.Countersigned, &a.CountersignerName, &a.CommittedAt, &a.CountersignedAt,
	)
	if err != nil {
		return nil, err
	}

	if category != nil {
		a.Category = *category
	}
	return &a, nil
}
