// Package ledger adapts the ledger gateway client to the AssetStore contract.
// Writes block until the ledger confirms inclusion; the caller's context
// bounds the wait. Reads come straight from the ledger's current state view,
// with no cache in between.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attest/internal/fingerprint"
	ledgerclient "attest/internal/ledger"
	"attest/internal/registry/models"
	"attest/pkg/platform/sentinel"
)

// Client is the slice of the gateway client the store needs. Narrowed to an
// interface so tests can substitute a fake without a node.
type Client interface {
	GetAsset(ctx context.Context, tokenID string) (*ledgerclient.Asset, error)
	SubmitMint(ctx context.Context, assets []ledgerclient.Asset) (string, error)
	SubmitRevoke(ctx context.Context, tokenID string, at time.Time) (string, error)
	WaitForConfirmation(ctx context.Context, txID string) error
}

// Store is the authoritative, consensus-ordered asset store.
type Store struct {
	client  Client
	network string
}

// New binds the store to a probed ledger. The network name comes from the
// startup probe so every response can carry the backend identity.
func New(client Client, network string) *Store {
	return &Store{client: client, network: network}
}

func (s *Store) Network() string { return s.network }

func (s *Store) Put(ctx context.Context, record *models.AssetRecord) (string, error) {
	return s.PutBatch(ctx, []*models.AssetRecord{record})
}

// PutBatch submits all records as one ledger transaction and blocks until it
// confirms. The ledger applies the batch atomically; a duplicate anywhere
// rejects the whole submission.
func (s *Store) PutBatch(ctx context.Context, records []*models.AssetRecord) (string, error) {
	assets := make([]ledgerclient.Asset, 0, len(records))
	for _, record := range records {
		assets = append(assets, toWire(record))
	}

	txID, err := s.client.SubmitMint(ctx, assets)
	if err != nil {
		return "", fmt.Errorf("submit mint: %w", err)
	}
	if err := s.client.WaitForConfirmation(ctx, txID); err != nil {
		return txID, fmt.Errorf("confirm mint: %w", err)
	}
	return txID, nil
}

func (s *Store) Get(ctx context.Context, fp fingerprint.Fingerprint) (*models.AssetRecord, error) {
	asset, err := s.client.GetAsset(ctx, fp.Hex())
	if err != nil {
		return nil, err
	}
	return fromWire(asset, fp), nil
}

func (s *Store) MarkRevoked(ctx context.Context, fp fingerprint.Fingerprint, at time.Time) error {
	txID, err := s.client.SubmitRevoke(ctx, fp.Hex(), at)
	if err != nil {
		return fmt.Errorf("submit revoke: %w", err)
	}
	if err := s.client.WaitForConfirmation(ctx, txID); err != nil {
		return fmt.Errorf("confirm revoke: %w", err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, fp fingerprint.Fingerprint) (bool, error) {
	_, err := s.Get(ctx, fp)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toWire(record *models.AssetRecord) ledgerclient.Asset {
	asset := ledgerclient.Asset{
		TokenID:     record.Fingerprint.Hex(),
		IssuerDID:   record.IssuerDID,
		Owner:       record.OwnerRef,
		AssetType:   record.AssetType,
		MintedAt:    record.MintedAt,
		MetadataRef: record.MetadataRef,
		Revoked:     record.Revoked(),
	}
	if !record.ExpiryAt.IsZero() {
		expiry := record.ExpiryAt
		asset.ExpiryAt = &expiry
	}
	if record.Revoked() {
		revokedAt := record.RevokedAt
		asset.RevokedAt = &revokedAt
	}
	return asset
}

func fromWire(asset *ledgerclient.Asset, fp fingerprint.Fingerprint) *models.AssetRecord {
	record := &models.AssetRecord{
		Fingerprint: fp,
		IssuerDID:   asset.IssuerDID,
		OwnerRef:    asset.Owner,
		AssetType:   asset.AssetType,
		MintedAt:    asset.MintedAt,
		MetadataRef: asset.MetadataRef,
		Status:      models.StatusActive,
	}
	if asset.ExpiryAt != nil {
		record.ExpiryAt = *asset.ExpiryAt
	}
	if asset.Revoked {
		record.Status = models.StatusRevoked
		if asset.RevokedAt != nil {
			record.RevokedAt = *asset.RevokedAt
		}
	}
	return record
}
