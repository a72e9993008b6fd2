package agreement

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_TextOnly(t *testing.T) {
	text := "We installed solar panels"

	want := sha256.Sum256([]byte(text))

	got := Fingerprint(text, nil)

	assert.Equal(t, hex.EncodeToString(want[:]), got)
	assert.Len(t, got, 64)
}

func TestFingerprint_WithAttachment(t *testing.T) {
	text := "We installed solar panels"
	attachment := []byte("0123456789")

	material := text + base64.StdEncoding.EncodeToString(attachment)
	want := sha256.Sum256([]byte(material))

	got := Fingerprint(text, attachment)

	assert.Equal(t, hex.EncodeToString(want[:]), got)
	assert.NotEqual(t, Fingerprint(text, nil), got,
		"attachment must change the digest")
}

func TestFingerprint_Deterministic(t *testing.T) {
	attachment := []byte{0x00, 0x01, 0xff, 0xfe}

	first := Fingerprint("same content", attachment)
	second := Fingerprint("same content", attachment)

	assert.Equal(t, first, second)
}

func TestFingerprint_EmptyAttachmentEqualsNone(t *testing.T) {
	// A genuinely empty byte string appends nothing.
	assert.Equal(t, Fingerprint("text", nil), Fingerprint("text", []byte{}))
}

func TestIsHexDigest(t *testing.T) {
	valid := Fingerprint("anything", nil)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid digest", valid, true},
		{"empty", "", false},
		{"too short", valid[:63], false},
		{"too long", valid + "a", false},
		{"non-hex characters", "z" + valid[1:], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHexDigest(tt.in))
		})
	}
}
