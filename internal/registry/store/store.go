// Package store defines the asset record store contract shared by the
// ledger-backed and snapshot implementations. Implementations return the
// pkg/platform/sentinel errors; the service layer translates them into the
// domain taxonomy.
package store

import (
	"context"
	"time"

	"attest/internal/fingerprint"
	"attest/internal/registry/models"
)

// AssetStore is the keyed store of asset records. Both backends satisfy it so
// the registry service cannot tell which one is active.
//
// Error contract:
//   - Put returns sentinel.ErrDuplicate when the fingerprint is present.
//   - Get and MarkRevoked return sentinel.ErrNotFound for unknown keys.
//   - MarkRevoked returns sentinel.ErrAlreadyRevoked for terminal records.
//   - Any backend may return sentinel.ErrUnavailable (wrapped) when it cannot
//     reach its durable medium.
type AssetStore interface {
	// Put and PutBatch return the ledger transaction ID that carried the
	// write. The snapshot store has no transactions and returns "".
	Put(ctx context.Context, record *models.AssetRecord) (string, error)
	PutBatch(ctx context.Context, records []*models.AssetRecord) (string, error)
	Get(ctx context.Context, fp fingerprint.Fingerprint) (*models.AssetRecord, error)
	MarkRevoked(ctx context.Context, fp fingerprint.Fingerprint, at time.Time) error
	Exists(ctx context.Context, fp fingerprint.Fingerprint) (bool, error)

	// Network names the backing medium ("demo-mode" for the snapshot store,
	// the ledger's network name otherwise). Every response carries it so
	// callers can tell authoritative from non-authoritative answers.
	Network() string
}
