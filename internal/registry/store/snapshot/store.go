// Package snapshot is the in-memory fallback asset store. It is seeded once
// at construction and exists so verification keeps answering when the ledger
// is unreachable. Writes are accepted but volatile: they mutate only the
// process-local copy and vanish on restart, which is acceptable because demo
// mode is never the authoritative record.
package snapshot

import (
	"context"
	"sync"
	"time"

	"attest/internal/fingerprint"
	"attest/internal/registry/models"
	"attest/pkg/platform/sentinel"
)

// NetworkName tags every response served from the snapshot so callers can see
// the answer is non-authoritative.
const NetworkName = "demo-mode"

// Store holds records in a map guarded by an RWMutex. Reads never contend
// with each other; the seed is fully applied before New returns, so no
// further initialization barrier is needed.
type Store struct {
	mu      sync.RWMutex
	records map[fingerprint.Fingerprint]*models.AssetRecord
}

// New builds a snapshot store pre-populated with the given seed records.
// Records are copied; the caller's slice is not retained.
func New(seed []models.AssetRecord) *Store {
	s := &Store{records: make(map[fingerprint.Fingerprint]*models.AssetRecord, len(seed))}
	for i := range seed {
		rec := seed[i]
		s.records[rec.Fingerprint] = &rec
	}
	return s
}

func (s *Store) Network() string { return NetworkName }

func (s *Store) Put(_ context.Context, record *models.AssetRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Fingerprint]; ok {
		return "", sentinel.ErrDuplicate
	}
	cp := *record
	s.records[record.Fingerprint] = &cp
	return "", nil
}

// PutBatch applies all records or none, matching the ledger backend's
// all-or-nothing transaction semantics.
func (s *Store) PutBatch(_ context.Context, records []*models.AssetRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		if _, ok := s.records[record.Fingerprint]; ok {
			return "", sentinel.ErrDuplicate
		}
	}
	for _, record := range records {
		cp := *record
		s.records[record.Fingerprint] = &cp
	}
	return "", nil
}

func (s *Store) Get(_ context.Context, fp fingerprint.Fingerprint) (*models.AssetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[fp]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) MarkRevoked(_ context.Context, fp fingerprint.Fingerprint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[fp]
	if !ok {
		return sentinel.ErrNotFound
	}
	if rec.Revoked() {
		return sentinel.ErrAlreadyRevoked
	}
	rec.Status = models.StatusRevoked
	rec.RevokedAt = at
	return nil
}

func (s *Store) Exists(_ context.Context, fp fingerprint.Fingerprint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[fp]
	return ok, nil
}

// Len reports the number of seeded plus minted records. Used by health
// reporting and tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
