package agreement

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// anchorWarning is the caller-visible note attached to an otherwise
// successful commit when the external anchor could not be reached.
const anchorWarning = "agreement committed but anchor notification failed"

// Encryptor seals agreement text for storage at rest.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// Notifier submits a hash and timestamp to the external anchoring service.
type Notifier interface {
	Notify(ctx context.Context, hash string, unixTimestamp int64) error
}

type Servicer interface {
	Create(ctx context.Context, ownerID int, text string, attachment []byte, category string) (CreateResult, error)
	Lookup(ctx context.Context, hash string) (*Agreement, error)
	Dashboard(ctx context.Context, ownerID int) (DashboardResponse, error)
	Countersign(ctx context.Context, hash, signerName string) (CountersignResult, error)
}

type CreateResult struct {
	Hash          string `json:"hash"`
	AnchorWarning string `json:"warning,omitempty"`
}

type CountersignResult struct {
	CountersignedAt time.Time `json:"countersigned_at"`
	AnchorWarning   string    `json:"warning,omitempty"`
}

// DashboardEntry is one decrypted row of the owner dashboard. Attachment
// bytes are re-encoded for JSON transport.
type DashboardEntry struct {
	Description       string     `json:"description"`
	Files             string     `json:"files,omitempty"`
	Category          string     `json:"category,omitempty"`
	Hash              string     `json:"hash"`
	Countersigned     bool       `json:"countersigned"`
	CountersignerName string     `json:"countersigner_name,omitempty"`
	Timestamp         time.Time  `json:"timestamp"`
	CountersignedAt   *time.Time `json:"countersigned_at,omitempty"`
}

type DashboardResponse struct {
	Agreements []DashboardEntry `json:"agreements"`
	Total      int              `json:"total"`
}

// Service coordinates fingerprinting, transactional persistence and anchor
// notification, and owns the pending -> countersigned transition.
type Service struct {
	repo   Repository
	enc    Encryptor
	anchor Notifier
	log    *slog.Logger
}

func NewService(repo Repository, enc Encryptor, anchor Notifier, log *slog.Logger) Servicer {
	return &Service{
		repo:   repo,
		enc:    enc,
		anchor: anchor,
		log:    log.With("component", "agreement_service"),
	}
}

// Create commits a new agreement: validate, fingerprint, persist in one
// transaction, then anchor. The anchor call runs strictly after commit and
// its failure is reported as a warning, never rolled back.
func (s *Service) Create(ctx context.Context, ownerID int, text string, attachment []byte, category string) (CreateResult, error) {
	if ownerID <= 0 {
		return CreateResult{}, fmt.Errorf("%w: owner", ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return CreateResult{}, fmt.Errorf("%w: agreement text", ErrInvalidInput)
	}
	if category != "" && !ValidCategory(category) {
		return CreateResult{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	hash := Fingerprint(text, attachment)

	ciphertext, err := s.enc.Encrypt([]byte(text))
	if err != nil {
		s.log.Error("failed to encrypt agreement text", "owner_id", ownerID, "error", err)
		return CreateResult{}, fmt.Errorf("encrypt agreement text: %w", err)
	}

	a := &Agreement{
		OwnerID:       ownerID,
		EncryptedText: ciphertext,
		Attachment:    attachment,
		Category:      category,
		Hash:          hash,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateHash) {
			return CreateResult{}, ErrDuplicateHash
		}
		s.log.Error("failed to create agreement", "owner_id", ownerID, "error", err)
		return CreateResult{}, fmt.Errorf("create agreement: %w", err)
	}

	res := CreateResult{Hash: hash}

	// Anchor with the commit time read back from the stored row, not the
	// local clock, so the anchored timestamp matches what was persisted.
	if err := s.anchor.Notify(ctx, hash, a.CommittedAt.Unix()); err != nil {
		s.log.Warn("anchor notification failed after commit", "hash", hash, "error", err)
		res.AnchorWarning = anchorWarning
	}

	s.log.Info("agreement committed", "id", a.ID, "owner_id", ownerID, "hash", hash)
	return res, nil
}

// Lookup resolves a fingerprint hash to decrypted agreement content for the
// countersigning flow. A malformed hash and an absent hash are
// indistinguishable to the caller: both are ErrNotFound.
func (s *Service) Lookup(ctx context.Context, hash string) (*Agreement, error) {
	if !IsHexDigest(hash) {
		return nil, ErrNotFound
	}

	a, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to look up agreement", "hash", hash, "error", err)
		return nil, fmt.Errorf("lookup agreement: %w", err)
	}

	if err := s.decrypt(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Dashboard returns every agreement in the owner's scope, decrypted.
func (s *Service) Dashboard(ctx context.Context, ownerID int) (DashboardResponse, error) {
	if ownerID <= 0 {
		return DashboardResponse{}, fmt.Errorf("%w: owner", ErrInvalidInput)
	}

	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list agreements", "owner_id", ownerID, "error", err)
		return DashboardResponse{}, fmt.Errorf("list agreements: %w", err)
	}

	entries := make([]DashboardEntry, 0, len(records))
	for i := range records {
		a := &records[i]
		if err := s.decrypt(a); err != nil {
			return DashboardResponse{}, err
		}

		entry := DashboardEntry{
			Description:     a.Text,
			Category:        a.Category,
			Hash:            a.Hash,
			Countersigned:   a.Countersigned,
			Timestamp:       a.CommittedAt,
			CountersignedAt: a.CountersignedAt,
		}
		if a.CountersignerName != nil {
			entry.CountersignerName = *a.CountersignerName
		}
		if len(a.Attachment) > 0 {
			entry.Files = base64.StdEncoding.EncodeToString(a.Attachment)
		}
		entries = append(entries, entry)
	}

	return DashboardResponse{Agreements: entries, Total: len(entries)}, nil
}

// Countersign performs the single allowed state transition and re-anchors
// the record with the signing timestamp. The creation anchor and the signing
// anchor are independent events over the lifetime of one record.
func (s *Service) Countersign(ctx context.Context, hash, signerName string) (CountersignResult, error) {
	if strings.TrimSpace(signerName) == "" {
		return CountersignResult{}, fmt.Errorf("%w: signer name", ErrInvalidInput)
	}
	if !IsHexDigest(hash) {
		return CountersignResult{}, ErrNotFound
	}

	a, err := s.repo.MarkCountersigned(ctx, hash, signerName)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadySigned) {
			return CountersignResult{}, err
		}
		s.log.Error("failed to countersign agreement", "hash", hash, "error", err)
		return CountersignResult{}, fmt.Errorf("countersign agreement: %w", err)
	}

	res := CountersignResult{CountersignedAt: *a.CountersignedAt}

	if err := s.anchor.Notify(ctx, hash, a.CountersignedAt.Unix()); err != nil {
		s.log.Warn("anchor notification failed after countersignature", "hash", hash, "error", err)
		res.AnchorWarning = anchorWarning
	}

	s.log.Info("agreement countersigned", "hash", hash, "signer", signerName)
	return res, nil
}

// decrypt replaces the ciphertext on a with its plaintext. A failure here is
// a key/configuration fault, never "no data", and is logged loudly.
func (s *Service) decrypt(a *Agreement) error {
	plaintext, err := s.enc.Decrypt(a.EncryptedText)
	if err != nil {
		s.log.Error("DECRYPTION FAILURE: stored ciphertext cannot be opened with the configured key",
			"hash", a.Hash, "error", err)
		return fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	a.Text = string(plaintext)
	a.EncryptedText = nil
	return nil
}
