package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ReceiptStore {
	t.Helper()

	store, err := NewReceiptStore(filepath.Join(t.TempDir(), "receipts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestReceiptStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)

	first := &Receipt{
		Hash:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Category:  "Operations",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	second := &Receipt{
		Hash:      "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Category:  "Impact",
		CreatedAt: time.Now(),
	}

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	receipts, err := store.List()
	require.NoError(t, err)
	require.Len(t, receipts, 2)

	// Newest first.
	assert.Equal(t, second.Hash, receipts[0].Hash)
	assert.Equal(t, "Impact", receipts[0].Category)
	assert.Equal(t, first.Hash, receipts[1].Hash)
}

func TestReceiptStore_SaveDuplicateIsNoop(t *testing.T) {
	store := newTestStore(t)

	r := &Receipt{
		Hash:      "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc",
		Category:  "Sourcing",
		CreatedAt: time.Now(),
	}

	require.NoError(t, store.Save(r))
	require.NoError(t, store.Save(r))

	receipts, err := store.List()
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestReceiptStore_ListEmpty(t *testing.T) {
	store := newTestStore(t)

	receipts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, receipts)
}
