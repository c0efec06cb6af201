// Package issuer keeps the issuer authorization table: issuer DID → enabled
// flag. The table is written only through owner-gated admin routes; the mint
// path consults it when per-issuer authorization is enabled by policy.
// Verification never reads it — checking authenticity is public by design.
package issuer

import (
	"context"
	"log/slog"
	"strings"

	"attest/internal/audit"
	derrors "attest/pkg/domain-errors"
)

// Store persists the table. Implementations must be safe for concurrent use.
type Store interface {
	SetEnabled(ctx context.Context, issuerDID string, enabled bool) error
	IsEnabled(ctx context.Context, issuerDID string) (bool, error)
}

// AuditPublisher records table changes for compliance indexing.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service validates and applies authorization changes.
type Service struct {
	store  Store
	logger *slog.Logger
	audit  AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authorize enables minting for the issuer.
func (s *Service) Authorize(ctx context.Context, issuerDID string) error {
	issuerDID = strings.TrimSpace(issuerDID)
	if issuerDID == "" {
		return derrors.New(derrors.CodeInvalidArgument, "issuer DID is required")
	}
	if err := s.store.SetEnabled(ctx, issuerDID, true); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "failed to authorize issuer")
	}
	s.emit(ctx, audit.EventIssuerAuthorized, issuerDID)
	return nil
}

// Deauthorize disables minting for the issuer. Existing records minted under
// the issuer keep verifying; deauthorization only blocks new mints.
func (s *Service) Deauthorize(ctx context.Context, issuerDID string) error {
	issuerDID = strings.TrimSpace(issuerDID)
	if issuerDID == "" {
		return derrors.New(derrors.CodeInvalidArgument, "issuer DID is required")
	}
	if err := s.store.SetEnabled(ctx, issuerDID, false); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "failed to deauthorize issuer")
	}
	s.emit(ctx, audit.EventIssuerDeauthorized, issuerDID)
	return nil
}

// IsAuthorized reports whether the issuer may mint. Unknown issuers are not
// authorized.
func (s *Service) IsAuthorized(ctx context.Context, issuerDID string) (bool, error) {
	if strings.TrimSpace(issuerDID) == "" {
		return false, nil
	}
	enabled, err := s.store.IsEnabled(ctx, issuerDID)
	if err != nil {
		return false, derrors.Wrap(err, derrors.CodeInternal, "failed to check issuer authorization")
	}
	return enabled, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, issuerDID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, audit.Event{Action: action, IssuerDID: issuerDID}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(action),
			"error", err,
		)
	}
}
