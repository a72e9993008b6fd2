package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	keyLength        = 32 // 256 bit for AES-256
)

// Encryptor seals agreement text at rest with AES-256-GCM. The key comes
// from process configuration at construction time and is immutable for the
// process lifetime; it is never logged.
type Encryptor struct {
	key []byte
}

// New builds an Encryptor from configuration. Either a 64-char hex key or a
// passphrase+salt pair must be supplied; the passphrase is stretched with
// PBKDF2-SHA256.
func New(keyHex, passphrase, salt string) (*Encryptor, error) {
	switch {
	case keyHex != "":
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != keyLength {
			return nil, errors.New("encryption key must be 32 bytes hex")
		}
		return &Encryptor{key: key}, nil
	case passphrase != "":
		if salt == "" {
			return nil, errors.New("encryption passphrase requires a salt")
		}
		key := pbkdf2.Key([]byte(passphrase), []byte(salt), pbkdf2Iterations, keyLength, sha256.New)
		return &Encryptor{key: key}, nil
	default:
		return nil, errors.New("no encryption key configured")
	}
}

// Encrypt seals plaintext with a fresh random nonce, returned as
// nonce||ciphertext.
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt. A failure here means the
// configured key does not match the stored ciphertext.
func (e *Encryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	return plaintext, nil
}

func (e *Encryptor) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}
