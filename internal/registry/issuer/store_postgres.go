package issuer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the authorization table. Schema:
//
//	CREATE TABLE issuer_authorizations (
//	    issuer_did TEXT PRIMARY KEY,
//	    enabled    BOOLEAN NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SetEnabled(ctx context.Context, issuerDID string, enabled bool) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO issuer_authorizations (issuer_did, enabled, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (issuer_did)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = now()`,
		issuerDID, enabled,
	)
	if err != nil {
		return fmt.Errorf("set issuer enabled: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsEnabled(ctx context.Context, issuerDID string) (bool, error) {
	var enabled bool
	err := s.pool.QueryRow(ctx,
		`SELECT enabled FROM issuer_authorizations WHERE issuer_did = $1`,
		issuerDID,
	).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check issuer enabled: %w", err)
	}
	return enabled, nil
}
