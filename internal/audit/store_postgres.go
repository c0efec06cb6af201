package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore archives audit events for compliance retention. Schema:
//
//	CREATE TABLE audit_events (
//	    id           UUID PRIMARY KEY,
//	    category     TEXT NOT NULL,
//	    action       TEXT NOT NULL,
//	    occurred_at  TIMESTAMPTZ NOT NULL,
//	    token_id     TEXT NOT NULL DEFAULT '',
//	    issuer_did   TEXT NOT NULL DEFAULT '',
//	    owner_ref    TEXT NOT NULL DEFAULT '',
//	    asset_type   TEXT NOT NULL DEFAULT '',
//	    minted_at    TIMESTAMPTZ,
//	    expiry_at    TIMESTAMPTZ,
//	    metadata_ref TEXT NOT NULL DEFAULT '',
//	    revoked_at   TIMESTAMPTZ,
//	    tx_id        TEXT NOT NULL DEFAULT '',
//	    network      TEXT NOT NULL DEFAULT '',
//	    request_id   TEXT NOT NULL DEFAULT '',
//	    client       TEXT NOT NULL DEFAULT ''
//	);
//	CREATE INDEX audit_events_token_idx ON audit_events (token_id, occurred_at);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (
			id, category, action, occurred_at,
			token_id, issuer_did, owner_ref, asset_type,
			minted_at, expiry_at, metadata_ref, revoked_at,
			tx_id, network, request_id, client
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		event.ID, string(event.Action.Category()), string(event.Action), event.Timestamp,
		event.TokenID, event.IssuerDID, event.OwnerRef, event.AssetType,
		nullTime(event.MintedAt), nullTime(event.ExpiryAt), event.MetadataRef, nullTime(event.RevokedAt),
		event.TxID, event.Network, event.RequestID, event.Client,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByToken returns the full provenance trail of one token, oldest first.
func (s *PostgresStore) ListByToken(ctx context.Context, tokenID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, occurred_at,
		       token_id, issuer_did, owner_ref, asset_type,
		       minted_at, expiry_at, metadata_ref, revoked_at,
		       tx_id, network, request_id, client
		FROM audit_events
		WHERE token_id = $1
		ORDER BY occurred_at`,
		tokenID,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event                         Event
			mintedAt, expiryAt, revokedAt sql.NullTime
			action                        string
		)
		if err := rows.Scan(
			&event.ID, &action, &event.Timestamp,
			&event.TokenID, &event.IssuerDID, &event.OwnerRef, &event.AssetType,
			&mintedAt, &expiryAt, &event.MetadataRef, &revokedAt,
			&event.TxID, &event.Network, &event.RequestID, &event.Client,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Action = Action(action)
		event.MintedAt = mintedAt.Time
		event.ExpiryAt = expiryAt.Time
		event.RevokedAt = revokedAt.Time
		events = append(events, event)
	}
	return events, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
