package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New("DEGREE-MIT-2024-001")
	b := New("DEGREE-MIT-2024-001")
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestNewIsExactByteMatch(t *testing.T) {
	// No normalization: case and whitespace change the key.
	assert.NotEqual(t, New("degree-mit-2024-001"), New("DEGREE-MIT-2024-001"))
	assert.NotEqual(t, New("DEGREE-MIT-2024-001 "), New("DEGREE-MIT-2024-001"))
}

func TestNewAcceptsEmptyString(t *testing.T) {
	f := New("")
	assert.False(t, f.IsZero())
	// Well-known SHA-256 of the empty string.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", f.Hex())
}

func TestParseHexRoundTrip(t *testing.T) {
	f := New("WATCH-ROLEX-8839-X")

	parsed, err := ParseHex(f.Hex())
	require.NoError(t, err)
	assert.Equal(t, f, parsed)

	parsed, err = ParseHex("0x" + f.Hex())
	require.NoError(t, err)
	assert.Equal(t, f, parsed)
}

func TestParseHexRejectsMalformed(t *testing.T) {
	_, err := ParseHex("not-hex")
	assert.Error(t, err)

	_, err = ParseHex("abcd") // too short
	assert.Error(t, err)
}
