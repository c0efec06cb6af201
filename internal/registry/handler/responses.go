package handler

import (
	"time"

	"attest/internal/registry/models"
)

// VerifyResponse is the public verification answer. A miss is a 200 with
// isVerified=false, never an error status.
type VerifyResponse struct {
	Status                string    `json:"status"`
	IsVerified            bool      `json:"isVerified"`
	TokenID               string    `json:"tokenId,omitempty"`
	IssuerDID             string    `json:"issuerDID,omitempty"`
	Owner                 string    `json:"owner,omitempty"`
	AssetType             string    `json:"assetType,omitempty"`
	Message               string    `json:"message,omitempty"`
	VerificationTimestamp time.Time `json:"verificationTimestamp"`
	BlockchainNetwork     string    `json:"blockchainNetwork"`
}

// DetailedVerifyResponse decomposes the failure reasons.
type DetailedVerifyResponse struct {
	VerifyResponse
	IsExpired    bool       `json:"isExpired"`
	IsRevoked    bool       `json:"isRevoked"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	MintedAt     *time.Time `json:"mintedAt,omitempty"`
	CurrentOwner string     `json:"currentOwner,omitempty"`
}

func newVerifyResponse(result *models.VerifyResult, network string) VerifyResponse {
	resp := VerifyResponse{
		Status:                "success",
		IsVerified:            result.Verified,
		VerificationTimestamp: result.CheckedAt,
		BlockchainNetwork:     network,
	}
	if !result.Found {
		resp.Message = "Asset not found"
		return resp
	}
	resp.TokenID = result.Fingerprint.Hex()
	resp.IssuerDID = result.IssuerDID
	resp.Owner = result.OwnerRef
	resp.AssetType = result.AssetType
	return resp
}

func newDetailedVerifyResponse(result *models.DetailedVerifyResult, network string) DetailedVerifyResponse {
	resp := DetailedVerifyResponse{
		VerifyResponse: newVerifyResponse(&result.VerifyResult, network),
		IsExpired:      result.Expired,
		IsRevoked:      result.Revoked,
	}
	if !result.Found {
		return resp
	}
	resp.CurrentOwner = result.OwnerRef
	mintedAt := result.MintedAt
	resp.MintedAt = &mintedAt
	if !result.ExpiryAt.IsZero() {
		expiry := result.ExpiryAt
		resp.ExpiryDate = &expiry
	}
	switch {
	case result.Revoked:
		resp.Message = "Asset has been revoked"
	case result.Expired:
		resp.Message = "Asset has expired"
	}
	return resp
}

// AssetResponse is the full record returned by the asset lookup endpoint.
type AssetResponse struct {
	TokenID           string     `json:"tokenId"`
	IssuerDID         string     `json:"issuerDID"`
	Owner             string     `json:"owner"`
	AssetType         string     `json:"assetType"`
	Status            string     `json:"status"`
	MintedAt          time.Time  `json:"mintedAt"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	RevokedAt         *time.Time `json:"revokedAt,omitempty"`
	MetadataRef       string     `json:"metadataRef,omitempty"`
	BlockchainNetwork string     `json:"blockchainNetwork"`
}

func newAssetResponse(record *models.AssetRecord, network string) AssetResponse {
	resp := AssetResponse{
		TokenID:           record.Fingerprint.Hex(),
		IssuerDID:         record.IssuerDID,
		Owner:             record.OwnerRef,
		AssetType:         record.AssetType,
		Status:            string(record.Status),
		MintedAt:          record.MintedAt,
		MetadataRef:       record.MetadataRef,
		BlockchainNetwork: network,
	}
	if !record.ExpiryAt.IsZero() {
		expiry := record.ExpiryAt
		resp.ExpiryDate = &expiry
	}
	if record.Revoked() {
		revokedAt := record.RevokedAt
		resp.RevokedAt = &revokedAt
	}
	return resp
}

// HealthResponse reflects the backend selector's startup binding.
type HealthResponse struct {
	Status     string    `json:"status"`
	Blockchain string    `json:"blockchain"`
	Timestamp  time.Time `json:"timestamp"`
}

// MintResponse acknowledges a confirmed mint.
type MintResponse struct {
	Status            string `json:"status"`
	TokenID           string `json:"tokenId"`
	TxID              string `json:"txId,omitempty"`
	Confirmed         bool   `json:"confirmed"`
	BlockchainNetwork string `json:"blockchainNetwork"`
}

func newMintResponse(receipt *models.MintReceipt, network string) MintResponse {
	return MintResponse{
		Status:            "success",
		TokenID:           receipt.TokenID,
		TxID:              receipt.TxID,
		Confirmed:         receipt.Confirmed,
		BlockchainNetwork: network,
	}
}

// BatchMintResponse acknowledges a confirmed batch.
type BatchMintResponse struct {
	Status            string         `json:"status"`
	Assets            []MintResponse `json:"assets"`
	BlockchainNetwork string         `json:"blockchainNetwork"`
}

// RevokeResponse acknowledges a revocation.
type RevokeResponse struct {
	Status    string    `json:"status"`
	TokenID   string    `json:"tokenId"`
	RevokedAt time.Time `json:"revokedAt"`
}

// LoginResponse carries the owner access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}
