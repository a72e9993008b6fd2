package client

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Receipt is a local record of an agreement committed from this machine.
// Only the hash and category are kept; the text itself never touches disk.
type Receipt struct {
	Hash      string
	Category  string
	CreatedAt time.Time
}

type ReceiptStore struct {
	db *sql.DB
}

func NewReceiptStore(path string) (*ReceiptStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create receipts dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &ReceiptStore{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return store, nil
}

func (s *ReceiptStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS receipts (
			hash TEXT PRIMARY KEY,
			category TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_receipts_created ON receipts(created_at);
	`)

	return err
}

func (s *ReceiptStore) Save(r *Receipt) error {
	_, err := s.db.Exec(`
		INSERT INTO receipts (hash, category, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, r.Hash, r.Category, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}

	return nil
}

func (s *ReceiptStore) List() ([]*Receipt, error) {
	rows, err := s.db.Query(`
		SELECT hash, category, created_at FROM receipts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*Receipt
	for rows.Next() {
		r := &Receipt{}
		if err := rows.Scan(&r.Hash, &r.Category, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, r)
	}

	return receipts, rows.Err()
}

func (s *ReceiptStore) Close() error {
	return s.db.Close()
}
