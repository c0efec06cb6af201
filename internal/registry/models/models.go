// Package models holds the registry's domain types. An AssetRecord is written
// once at mint and only ever transitions Active → Revoked; expiry is computed
// against the query-time clock, never stored as a status.
package models

import (
	"strings"
	"time"

	"attest/internal/fingerprint"
	derrors "attest/pkg/domain-errors"
)

// Status is the stored lifecycle state of a record. Expired is deliberately
// not a Status: it is derived from ExpiryAt on every read.
type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// AssetRecord is one minted asset. All fields except the revocation state are
// immutable after mint; OwnerRef changes only through a transfer flow that
// lives outside this service.
type AssetRecord struct {
	Fingerprint fingerprint.Fingerprint
	IssuerDID   string
	OwnerRef    string
	AssetType   string
	MintedAt    time.Time
	// ExpiryAt zero means the record never expires.
	ExpiryAt    time.Time
	MetadataRef string
	Status      Status
	RevokedAt   time.Time
}

// Revoked reports whether the record reached its terminal state.
func (r *AssetRecord) Revoked() bool {
	return r.Status == StatusRevoked
}

// ExpiredAt reports whether the record is expired at the given instant.
func (r *AssetRecord) ExpiredAt(now time.Time) bool {
	return !r.ExpiryAt.IsZero() && !r.ExpiryAt.After(now)
}

// ValidAt reports whether the record verifies at the given instant: present,
// not expired, not revoked.
func (r *AssetRecord) ValidAt(now time.Time) bool {
	return !r.Revoked() && !r.ExpiredAt(now)
}

// Revoke transitions the record to its terminal state. The transition is
// monotonic: revoking a revoked record is an error, never a no-op.
func (r *AssetRecord) Revoke(at time.Time) error {
	if r.Revoked() {
		return derrors.New(derrors.CodeAlreadyRevoked, "asset is already revoked")
	}
	r.Status = StatusRevoked
	r.RevokedAt = at
	return nil
}

// MintRequest carries the caller-supplied fields for a single mint.
type MintRequest struct {
	RawIdentifier string
	IssuerDID     string
	OwnerRef      string
	AssetType     string
	// ExpiryAt zero means the asset never expires.
	ExpiryAt    time.Time
	MetadataRef string
}

// Normalize trims the free-form string fields. The raw identifier is left
// untouched: the fingerprint is an exact byte match over what was printed on
// the asset.
func (m *MintRequest) Normalize() {
	m.IssuerDID = strings.TrimSpace(m.IssuerDID)
	m.OwnerRef = strings.TrimSpace(m.OwnerRef)
	m.AssetType = strings.TrimSpace(m.AssetType)
	m.MetadataRef = strings.TrimSpace(m.MetadataRef)
}

// Validate checks mint preconditions that do not need store access.
func (m *MintRequest) Validate() error {
	if m.RawIdentifier == "" {
		return derrors.New(derrors.CodeInvalidArgument, "identifier is required")
	}
	if m.IssuerDID == "" {
		return derrors.New(derrors.CodeInvalidArgument, "issuer DID is required")
	}
	if m.OwnerRef == "" {
		return derrors.New(derrors.CodeInvalidArgument, "owner reference is required")
	}
	return nil
}

// VerifyResult is the compact answer to a verification query. A miss is a
// valid result, not an error: Found=false with a zero fingerprint.
type VerifyResult struct {
	Fingerprint fingerprint.Fingerprint
	IssuerDID   string
	OwnerRef    string
	AssetType   string
	Verified    bool
	Found       bool
	CheckedAt   time.Time
}

// DetailedVerifyResult decomposes the reasons a verification failed so a
// caller can tell the holder which condition tripped.
type DetailedVerifyResult struct {
	VerifyResult
	Expired   bool
	Revoked   bool
	MintedAt  time.Time
	ExpiryAt  time.Time
	RevokedAt time.Time
}

// MintReceipt reports the outcome of a mint submission. TxID identifies the
// ledger transaction for external signer reconciliation; in demo mode it is
// empty and Confirmed is immediate.
type MintReceipt struct {
	Fingerprint fingerprint.Fingerprint
	TokenID     string
	TxID        string
	Confirmed   bool
}
