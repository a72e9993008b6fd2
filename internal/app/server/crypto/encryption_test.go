package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptor_RoundTrip(t *testing.T) {
	enc, err := New(strings.Repeat("ab", 32), "", "")
	assert.NoError(t, err)

	plaintext := []byte("We installed solar panels")

	ciphertext, err := enc.Encrypt(plaintext)
	assert.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := enc.Decrypt(ciphertext)
	assert.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptor_NoncesDiffer(t *testing.T) {
	enc, err := New("", "passphrase-from-config", "salt-from-config")
	assert.NoError(t, err)

	first, err := enc.Encrypt([]byte("same text"))
	assert.NoError(t, err)
	second, err := enc.Encrypt([]byte("same text"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second, "GCM nonce must be fresh per encryption")
}

func TestEncryptor_WrongKeyFails(t *testing.T) {
	enc, err := New(strings.Repeat("ab", 32), "", "")
	assert.NoError(t, err)
	other, err := New(strings.Repeat("cd", 32), "", "")
	assert.NoError(t, err)

	ciphertext, err := enc.Encrypt([]byte("secret"))
	assert.NoError(t, err)

	_, err = other.Decrypt(ciphertext)
	assert.Error(t, err, "a key mismatch must surface as an error, not empty data")
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		keyHex     string
		passphrase string
		salt       string
		wantErr    bool
	}{
		{"hex key", strings.Repeat("00", 32), "", "", false},
		{"short hex key", "abcd", "", "", true},
		{"not hex", strings.Repeat("zz", 32), "", "", true},
		{"passphrase with salt", "", "p", "s", false},
		{"passphrase without salt", "", "p", "", true},
		{"nothing configured", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.keyHex, tt.passphrase, tt.salt)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncryptor_TruncatedCiphertext(t *testing.T) {
	enc, err := New(strings.Repeat("ab", 32), "", "")
	assert.NoError(t, err)

	_, err = enc.Decrypt([]byte{0x01, 0x02})
	assert.Error(t, err)
}
