//go:build integration

package issuer_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"attest/internal/registry/issuer"
	"attest/pkg/testutil/containers"
)

const issuerSchema = `
	CREATE TABLE IF NOT EXISTS issuer_authorizations (
	    issuer_did TEXT PRIMARY KEY,
	    enabled    BOOLEAN NOT NULL,
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func TestRedisStoreRoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	store := issuer.NewRedisStore(rc.Client)

	enabled, err := store.IsEnabled(ctx, "did:x:unknown")
	require.NoError(t, err)
	require.False(t, enabled, "unknown issuer must not be authorized")

	require.NoError(t, store.SetEnabled(ctx, "did:x:mit", true))
	enabled, err = store.IsEnabled(ctx, "did:x:mit")
	require.NoError(t, err)
	require.True(t, enabled)

	require.NoError(t, store.SetEnabled(ctx, "did:x:mit", false))
	enabled, err = store.IsEnabled(ctx, "did:x:mit")
	require.NoError(t, err)
	require.False(t, enabled, "deauthorization must stick")
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, pc.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, issuerSchema)
	require.NoError(t, err)

	store := issuer.NewPostgresStore(pool)

	enabled, err := store.IsEnabled(ctx, "did:x:unknown")
	require.NoError(t, err)
	require.False(t, enabled, "unknown issuer must not be authorized")

	require.NoError(t, store.SetEnabled(ctx, "did:x:mit", true))
	enabled, err = store.IsEnabled(ctx, "did:x:mit")
	require.NoError(t, err)
	require.True(t, enabled)

	// Upsert on the same DID flips the flag in place.
	require.NoError(t, store.SetEnabled(ctx, "did:x:mit", false))
	enabled, err = store.IsEnabled(ctx, "did:x:mit")
	require.NoError(t, err)
	require.False(t, enabled)
}
