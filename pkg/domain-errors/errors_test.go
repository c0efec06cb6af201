package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := New(CodeDuplicateAsset, "fingerprint taken")
	assert.True(t, HasCode(err, CodeDuplicateAsset))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeDuplicateAsset))
	assert.False(t, HasCode(nil, CodeDuplicateAsset))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "ledger unreachable")

	require.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeTimeout, "confirmation deadline exceeded")
	outer := fmt.Errorf("mint: %w", inner)
	assert.True(t, HasCode(outer, CodeTimeout))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeUnauthorized, CodeOf(New(CodeUnauthorized, "not owner")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("anything")))
}
