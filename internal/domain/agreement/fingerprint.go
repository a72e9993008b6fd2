package agreement

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Fingerprint derives the public content hash of an agreement: SHA-256 over
// the submitted text, with the attachment Base64-encoded and appended when
// one is present. The digest is lowercase hex, 64 characters.
//
// The function is pure: no salt, no per-record randomness. Identical
// (text, attachment) inputs always produce the identical hash, which is what
// the external anchor attests to.
func Fingerprint(text string, attachment []byte) string {
	material := text
	if len(attachment) > 0 {
		material += base64.StdEncoding.EncodeToString(attachment)
	}
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// IsHexDigest reports whether s looks like a SHA-256 hex digest. Callers
// treat a malformed hash exactly like an absent one.
func IsHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	if _, err := hex.DecodeString(s); err != nil {
		return false
	}
	return true
}
