// Package backend decides which asset store serves the process: the
// consensus-ordered ledger when it is configured and reachable at startup,
// the seeded snapshot otherwise. The binding is fixed for the process
// lifetime; every response carries the chosen backend's network tag so
// callers can tell authoritative answers from demo-mode ones.
package backend

import (
	"context"
	"log/slog"

	ledgerclient "attest/internal/ledger"
	"attest/internal/registry/models"
	"attest/internal/registry/store"
	ledgerstore "attest/internal/registry/store/ledger"
	"attest/internal/registry/store/snapshot"
)

// LedgerClient is what the selector needs from the gateway client: a startup
// probe plus the store operations it hands to the ledger-backed store.
type LedgerClient interface {
	ledgerstore.Client
	Status(ctx context.Context) (*ledgerclient.Status, error)
}

// Selector holds the store chosen at startup.
type Selector struct {
	active    store.AssetStore
	connected bool
}

// Select probes the ledger once and binds the backend. A nil client means no
// ledger endpoint is configured; a failed probe falls back to the snapshot
// rather than failing startup, because verification must keep answering.
func Select(ctx context.Context, client LedgerClient, seed []models.AssetRecord, logger *slog.Logger) *Selector {
	if client == nil {
		logger.Info("no ledger configured, serving from snapshot", "network", snapshot.NetworkName)
		return &Selector{active: snapshot.New(seed)}
	}

	status, err := client.Status(ctx)
	if err != nil {
		logger.Warn("ledger unreachable, falling back to snapshot",
			"error", err,
			"network", snapshot.NetworkName,
		)
		return &Selector{active: snapshot.New(seed)}
	}

	logger.Info("ledger backend bound",
		"network", status.Network,
		"contract", status.Contract,
		"block_height", status.BlockHeight,
	)
	return &Selector{
		active:    ledgerstore.New(client, status.Network),
		connected: true,
	}
}

// Active returns the store chosen at startup.
func (s *Selector) Active() store.AssetStore { return s.active }

// Network is the tag stamped on every response.
func (s *Selector) Network() string { return s.active.Network() }

// Connected reports whether the authoritative ledger is behind Active.
func (s *Selector) Connected() bool { return s.connected }
