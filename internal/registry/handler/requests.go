package handler

import (
	"strings"
	"time"

	"attest/internal/registry/models"
)

// VerifyRequest carries the raw identifier printed on the asset. The exact
// byte sequence is hashed; no trimming or case folding is applied.
type VerifyRequest struct {
	UniqueID string `json:"uniqueId"`
}

// MintRequest is the admin-facing shape for a single mint.
type MintRequest struct {
	UniqueID    string     `json:"uniqueId"`
	IssuerDID   string     `json:"issuerDID"`
	Owner       string     `json:"owner"`
	AssetType   string     `json:"assetType"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	MetadataRef string     `json:"metadataRef,omitempty"`
}

func (r MintRequest) toModel() models.MintRequest {
	req := models.MintRequest{
		RawIdentifier: r.UniqueID,
		IssuerDID:     r.IssuerDID,
		OwnerRef:      r.Owner,
		AssetType:     r.AssetType,
		MetadataRef:   r.MetadataRef,
	}
	if r.ExpiryDate != nil {
		req.ExpiryAt = *r.ExpiryDate
	}
	return req
}

// BatchMintRequest submits several mints as one all-or-nothing transaction.
type BatchMintRequest struct {
	Assets []MintRequest `json:"assets"`
}

// LoginRequest exchanges the admin key for an owner access token.
type LoginRequest struct {
	AdminKey string `json:"adminKey"`
}

func emptyIdentifier(s string) bool {
	return strings.TrimSpace(s) == ""
}
