package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so services can translate them into domain
// errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the active store
// - ErrDuplicate: fingerprint already present, the write was rejected
// - ErrAlreadyRevoked: record is already in its terminal state
// - ErrReadOnly: the store does not accept writes
// - ErrUnavailable: ledger or resource temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate")
	ErrAlreadyRevoked = errors.New("already revoked")
	ErrReadOnly       = errors.New("read only")
	ErrUnavailable    = errors.New("unavailable")
)
