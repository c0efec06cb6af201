// Package fingerprint canonicalizes raw asset identifiers into the fixed-size
// content hash that keys the registry. The mapping is a pure function: the
// exact printed identifier, byte for byte, always yields the same fingerprint
// on every backend. No normalization is applied; callers pass the identifier
// exactly as it appears on the asset.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Size is the fingerprint length in bytes.
const Size = sha256.Size

// Fingerprint is the registry's primary key: a SHA-256 digest of the raw
// identifier string.
type Fingerprint [Size]byte

// New computes the fingerprint of a raw identifier. Total over all strings,
// including the empty string; rejecting empty identifiers is the caller's job.
func New(identifier string) Fingerprint {
	return Fingerprint(sha256.Sum256([]byte(identifier)))
}

// Hex returns the lowercase hex encoding used as the external token ID.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

func (f Fingerprint) String() string { return f.Hex() }

// IsZero reports whether f is the zero value, used to mean "no record".
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// ParseHex decodes a token ID back into a Fingerprint. It accepts an optional
// 0x prefix and is case-insensitive, since token IDs travel through URLs and
// wallets that disagree on casing.
func ParseHex(s string) (Fingerprint, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("parse fingerprint: %w", err)
	}
	if len(raw) != Size {
		return Fingerprint{}, fmt.Errorf("parse fingerprint: want %d bytes, got %d", Size, len(raw))
	}
	var f Fingerprint
	copy(f[:], raw)
	return f, nil
}
