package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attest/internal/fingerprint"
	ledgerclient "attest/internal/ledger"
	"attest/internal/registry/models"
	"attest/pkg/platform/sentinel"
)

// fakeClient implements Client in memory with instant confirmation.
type fakeClient struct {
	mu         sync.Mutex
	assets     map[string]ledgerclient.Asset
	confirmErr error
	submits    int
}

func newFakeClient() *fakeClient {
	return &fakeClient{assets: make(map[string]ledgerclient.Asset)}
}

func (f *fakeClient) GetAsset(_ context.Context, tokenID string) (*ledgerclient.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[tokenID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &asset, nil
}

func (f *fakeClient) SubmitMint(_ context.Context, assets []ledgerclient.Asset) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	for _, a := range assets {
		if _, ok := f.assets[a.TokenID]; ok {
			return "", sentinel.ErrDuplicate
		}
	}
	for _, a := range assets {
		f.assets[a.TokenID] = a
	}
	return "tx-mint", nil
}

func (f *fakeClient) SubmitRevoke(_ context.Context, tokenID string, at time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[tokenID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if asset.Revoked {
		return "", sentinel.ErrAlreadyRevoked
	}
	asset.Revoked = true
	asset.RevokedAt = &at
	f.assets[tokenID] = asset
	return "tx-revoke", nil
}

func (f *fakeClient) WaitForConfirmation(ctx context.Context, _ string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	return ctx.Err()
}

func newRecord(identifier string) *models.AssetRecord {
	return &models.AssetRecord{
		Fingerprint: fingerprint.New(identifier),
		IssuerDID:   "did:x:mit",
		OwnerRef:    "addr:holder:0x1",
		AssetType:   "diploma",
		MintedAt:    time.Now().UTC().Truncate(time.Second),
		Status:      models.StatusActive,
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	client := newFakeClient()
	store := New(client, "attest-testnet")
	ctx := context.Background()

	rec := newRecord("DEGREE-MIT-2024-001")
	rec.ExpiryAt = time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	txID, err := store.Put(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "tx-mint", txID)

	got, err := store.Get(ctx, rec.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, rec.IssuerDID, got.IssuerDID)
	assert.Equal(t, rec.OwnerRef, got.OwnerRef)
	assert.True(t, rec.ExpiryAt.Equal(got.ExpiryAt))
	assert.Equal(t, models.StatusActive, got.Status)
}

func TestPutDuplicate(t *testing.T) {
	client := newFakeClient()
	store := New(client, "attest-testnet")
	ctx := context.Background()

	_, err := store.Put(ctx, newRecord("A"))
	require.NoError(t, err)
	_, err = store.Put(ctx, newRecord("A"))
	require.ErrorIs(t, err, sentinel.ErrDuplicate)
}

func TestPutBatchSingleSubmission(t *testing.T) {
	client := newFakeClient()
	store := New(client, "attest-testnet")
	ctx := context.Background()

	batch := []*models.AssetRecord{newRecord("B1"), newRecord("B2"), newRecord("B3")}
	_, err := store.PutBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, client.submits, "a batch is one ledger transaction")
}

func TestPutSurfacesConfirmationTimeout(t *testing.T) {
	client := newFakeClient()
	client.confirmErr = context.DeadlineExceeded
	store := New(client, "attest-testnet")

	_, err := store.Put(context.Background(), newRecord("C"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMarkRevokedStates(t *testing.T) {
	client := newFakeClient()
	store := New(client, "attest-testnet")
	ctx := context.Background()
	at := time.Now().UTC()

	rec := newRecord("D")
	_, err := store.Put(ctx, rec)
	require.NoError(t, err)

	require.NoError(t, store.MarkRevoked(ctx, rec.Fingerprint, at))

	got, err := store.Get(ctx, rec.Fingerprint)
	require.NoError(t, err)
	assert.True(t, got.Revoked())
	assert.True(t, at.Equal(got.RevokedAt))

	err = store.MarkRevoked(ctx, rec.Fingerprint, at)
	require.ErrorIs(t, err, sentinel.ErrAlreadyRevoked)

	err = store.MarkRevoked(ctx, fingerprint.New("missing"), at)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestExists(t *testing.T) {
	client := newFakeClient()
	store := New(client, "attest-testnet")
	ctx := context.Background()

	rec := newRecord("E")
	_, err := store.Put(ctx, rec)
	require.NoError(t, err)

	ok, err := store.Exists(ctx, rec.Fingerprint)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, fingerprint.New("missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNetworkTag(t *testing.T) {
	store := New(newFakeClient(), "attest-testnet")
	assert.Equal(t, "attest-testnet", store.Network())
}
