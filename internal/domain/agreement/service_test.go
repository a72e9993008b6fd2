package agreement

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *Agreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByHash(ctx context.Context, hash string) (*Agreement, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Agreement), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID int) ([]Agreement, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Agreement), args.Error(1)
}

func (m *MockRepository) MarkCountersigned(ctx context.Context, hash, signerName string) (*Agreement, error) {
	args := m.Called(ctx, hash, signerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Agreement), args.Error(1)
}

type MockEncryptor struct {
	mock.Mock
}

func (m *MockEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, hash string, unixTimestamp int64) error {
	args := m.Called(ctx, hash, unixTimestamp)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Create(t *testing.T) {
	ownerID := 42
	text := "We installed solar panels"
	committedAt := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hash := Fingerprint(text, nil)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		anchor := new(MockNotifier)
		svc := NewService(repo, enc, anchor, testLogger())

		enc.On("Encrypt", []byte(text)).Return([]byte("ciphertext"), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *Agreement) bool {
			return a.OwnerID == ownerID && a.Hash == hash && string(a.EncryptedText) == "ciphertext"
		})).Run(func(args mock.Arguments) {
			a := args.Get(1).(*Agreement)
			a.ID = 7
			a.CommittedAt = committedAt
		}).Return(nil)
		// Anchored timestamp must come from the stored row.
		anchor.On("Notify", mock.Anything, hash, committedAt.Unix()).Return(nil)

		res, err := svc.Create(context.Background(), ownerID, text, nil, "")

		assert.NoError(t, err)
		assert.Equal(t, hash, res.Hash)
		assert.Empty(t, res.AnchorWarning)
		repo.AssertExpectations(t)
		anchor.AssertExpectations(t)
	})

	t.Run("AnchorFailureStillCommits", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		anchor := new(MockNotifier)
		svc := NewService(repo, enc, anchor, testLogger())

		enc.On("Encrypt", mock.Anything).Return([]byte("ciphertext"), nil)
		repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*Agreement).CommittedAt = committedAt
		}).Return(nil)
		anchor.On("Notify", mock.Anything, hash, mock.Anything).Return(errors.New("connection refused"))

		res, err := svc.Create(context.Background(), ownerID, text, nil, "")

		assert.NoError(t, err, "anchor failure must not fail the commit")
		assert.Equal(t, hash, res.Hash)
		assert.NotEmpty(t, res.AnchorWarning)
	})

	t.Run("DuplicateHash", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		anchor := new(MockNotifier)
		svc := NewService(repo, enc, anchor, testLogger())

		enc.On("Encrypt", mock.Anything).Return([]byte("ciphertext"), nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(ErrDuplicateHash)

		_, err := svc.Create(context.Background(), ownerID, text, nil, "")

		assert.ErrorIs(t, err, ErrDuplicateHash)
		anchor.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyText", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockEncryptor), new(MockNotifier), testLogger())

		_, err := svc.Create(context.Background(), ownerID, "   ", nil, "")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("MissingOwner", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockEncryptor), new(MockNotifier), testLogger())

		_, err := svc.Create(context.Background(), 0, text, nil, "")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockEncryptor), new(MockNotifier), testLogger())

		_, err := svc.Create(context.Background(), ownerID, text, nil, "Logistics")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("AttachmentChangesHash", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		anchor := new(MockNotifier)
		svc := NewService(repo, enc, anchor, testLogger())

		attachment := []byte("0123456789")
		wantHash := Fingerprint(text, attachment)

		enc.On("Encrypt", mock.Anything).Return([]byte("ciphertext"), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *Agreement) bool {
			return a.Hash == wantHash
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Agreement).CommittedAt = committedAt
		}).Return(nil)
		anchor.On("Notify", mock.Anything, wantHash, mock.Anything).Return(nil)

		res, err := svc.Create(context.Background(), ownerID, text, attachment, CategoryImpact)

		assert.NoError(t, err)
		assert.Equal(t, wantHash, res.Hash)
		assert.NotEqual(t, hash, res.Hash)
	})
}

func TestService_Lookup(t *testing.T) {
	hash := Fingerprint("some agreement", nil)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		svc := NewService(repo, enc, new(MockNotifier), testLogger())

		repo.On("GetByHash", mock.Anything, hash).Return(&Agreement{
			Hash:          hash,
			EncryptedText: []byte("ciphertext"),
		}, nil)
		enc.On("Decrypt", []byte("ciphertext")).Return([]byte("some agreement"), nil)

		a, err := svc.Lookup(context.Background(), hash)

		assert.NoError(t, err)
		assert.Equal(t, "some agreement", a.Text)
		assert.Nil(t, a.EncryptedText)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEncryptor), new(MockNotifier), testLogger())

		repo.On("GetByHash", mock.Anything, hash).Return(nil, ErrNotFound)

		_, err := svc.Lookup(context.Background(), hash)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("MalformedHashSameAsAbsent", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEncryptor), new(MockNotifier), testLogger())

		_, err := svc.Lookup(context.Background(), "not-a-hash")

		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "GetByHash", mock.Anything, mock.Anything)
	})

	t.Run("DecryptionFailureIsNotNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		svc := NewService(repo, enc, new(MockNotifier), testLogger())

		repo.On("GetByHash", mock.Anything, hash).Return(&Agreement{
			Hash:          hash,
			EncryptedText: []byte("ciphertext"),
		}, nil)
		enc.On("Decrypt", mock.Anything).Return(nil, errors.New("cipher: message authentication failed"))

		_, err := svc.Lookup(context.Background(), hash)

		assert.ErrorIs(t, err, ErrDecryption)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Dashboard(t *testing.T) {
	ownerID := 42

	t.Run("DecryptsAndEncodesAttachments", func(t *testing.T) {
		repo := new(MockRepository)
		enc := new(MockEncryptor)
		svc := NewService(repo, enc, new(MockNotifier), testLogger())

		signer := "Jane Doe"
		repo.On("ListByOwner", mock.Anything, ownerID).Return([]Agreement{
			{
				Hash:              Fingerprint("first", nil),
				EncryptedText:     []byte("c1"),
				Attachment:        []byte{0x01, 0x02},
				Category:          CategorySourcing,
				Countersigned:     true,
				CountersignerName: &signer,
			},
			{
				Hash:          Fingerprint("second", nil),
				EncryptedText: []byte("c2"),
			},
		}, nil)
		enc.On("Decrypt", []byte("c1")).Return([]byte("first"), nil)
		enc.On("Decrypt", []byte("c2")).Return([]byte("second"), nil)

		res, err := svc.Dashboard(context.Background(), ownerID)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, "first", res.Agreements[0].Description)
		assert.Equal(t, "AQI=", res.Agreements[0].Files)
		assert.Equal(t, "Jane Doe", res.Agreements[0].CountersignerName)
		assert.Empty(t, res.Agreements[1].Files)
	})

	t.Run("EmptyScope", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEncryptor), new(MockNotifier), testLogger())

		repo.On("ListByOwner", mock.Anything, ownerID).Return([]Agreement{}, nil)

		res, err := svc.Dashboard(context.Background(), ownerID)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
	})
}

func TestService_Countersign(t *testing.T) {
	hash := Fingerprint("pending agreement", nil)
	signedAt := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		anchor := new(MockNotifier)
		svc := NewService(repo, new(MockEncryptor), anchor, testLogger())

		name := "Jane Doe"
		repo.On("MarkCountersigned", mock.Anything, hash, name).Return(&Agreement{
			Hash:              hash,
			Countersigned:     true,
			CountersignerName: &name,
			CountersignedAt:   &signedAt,
		}, nil)
		// The signing event gets its own anchor with the signing timestamp.
		anchor.On("Notify", mock.Anything, hash, signedAt.Unix()).Return(nil)

		res, err := svc.Countersign(context.Background(), hash, name)

		assert.NoError(t, err)
		assert.Equal(t, signedAt, res.CountersignedAt)
		assert.Empty(t, res.AnchorWarning)
		anchor.AssertExpectations(t)
	})

	t.Run("AlreadySigned", func(t *testing.T) {
		repo := new(MockRepository)
		anchor := new(MockNotifier)
		svc := NewService(repo, new(MockEncryptor), anchor, testLogger())

		repo.On("MarkCountersigned", mock.Anything, hash, "Jane Doe").Return(nil, ErrAlreadySigned)

		_, err := svc.Countersign(context.Background(), hash, "Jane Doe")

		assert.ErrorIs(t, err, ErrAlreadySigned)
		anchor.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEncryptor), new(MockNotifier), testLogger())

		repo.On("MarkCountersigned", mock.Anything, hash, "Jane Doe").Return(nil, ErrNotFound)

		_, err := svc.Countersign(context.Background(), hash, "Jane Doe")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EmptySignerName", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockEncryptor), new(MockNotifier), testLogger())

		_, err := svc.Countersign(context.Background(), hash, "  ")

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "MarkCountersigned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AnchorFailureIsWarning", func(t *testing.T) {
		repo := new(MockRepository)
		anchor := new(MockNotifier)
		svc := NewService(repo, new(MockEncryptor), anchor, testLogger())

		name := "Jane Doe"
		repo.On("MarkCountersigned", mock.Anything, hash, name).Return(&Agreement{
			Hash:            hash,
			Countersigned:   true,
			CountersignedAt: &signedAt,
		}, nil)
		anchor.On("Notify", mock.Anything, hash, signedAt.Unix()).Return(errors.New("timeout"))

		res, err := svc.Countersign(context.Background(), hash, name)

		assert.NoError(t, err, "signature is recorded whether or not anchoring succeeds")
		assert.NotEmpty(t, res.AnchorWarning)
	})
}
