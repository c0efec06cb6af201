// Package service orchestrates mint, revoke and verification against
// whichever asset store the backend selector bound at startup. Business
// invariants live here, independent of the storage backend: the owner gate,
// the duplicate-fingerprint rule, monotonic revocation and the rule that a
// failed verification is an answer, not an error.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"attest/internal/audit"
	"attest/internal/fingerprint"
	"attest/internal/platform/middleware"
	"attest/internal/registry/metrics"
	"attest/internal/registry/models"
	derrors "attest/pkg/domain-errors"
	"attest/pkg/platform/sentinel"
)

var tracer = otel.Tracer("attest/registry")

// AssetStore is the slice of the record store the service depends on. Both
// the ledger-backed and snapshot stores satisfy it.
type AssetStore interface {
	Put(ctx context.Context, record *models.AssetRecord) (string, error)
	PutBatch(ctx context.Context, records []*models.AssetRecord) (string, error)
	Get(ctx context.Context, fp fingerprint.Fingerprint) (*models.AssetRecord, error)
	MarkRevoked(ctx context.Context, fp fingerprint.Fingerprint, at time.Time) error
	Exists(ctx context.Context, fp fingerprint.Fingerprint) (bool, error)
	Network() string
}

// IssuerAuthorizer answers whether an issuer DID may mint. Only consulted
// when per-issuer authorization is enabled by policy.
type IssuerAuthorizer interface {
	IsAuthorized(ctx context.Context, issuerDID string) (bool, error)
}

// AuditPublisher records registry mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service enforces the registry's invariants over the bound store.
type Service struct {
	store          AssetStore
	ownerRef       string
	issuers        IssuerAuthorizer
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	now            func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithIssuerAuthorization turns on the per-issuer policy check on the mint
// path, on top of the always-enforced owner gate.
func WithIssuerAuthorization(issuers IssuerAuthorizer) Option {
	return func(s *Service) {
		s.issuers = issuers
	}
}

// WithClock overrides the query-time clock. Tests pin it to make expiry
// boundaries deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service bound to one store. ownerRef is the single
// administrative identity allowed to mint and revoke.
func New(store AssetStore, ownerRef string, opts ...Option) *Service {
	s := &Service{
		store:    store,
		ownerRef: ownerRef,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Network names the backend serving answers ("demo-mode" or a ledger network).
func (s *Service) Network() string { return s.store.Network() }

// Mint creates one Active record keyed by the identifier's fingerprint and
// blocks until the backend confirms the write.
func (s *Service) Mint(ctx context.Context, caller string, req models.MintRequest) (*models.MintReceipt, error) {
	receipts, err := s.mint(ctx, caller, []models.MintRequest{req}, audit.EventAssetMinted)
	if err != nil {
		return nil, err
	}
	return &receipts[0], nil
}

// BatchMint submits all requests as one all-or-nothing write. Every request
// must carry the same issuer DID; a failure anywhere rejects the whole batch.
func (s *Service) BatchMint(ctx context.Context, caller string, reqs []models.MintRequest) ([]models.MintReceipt, error) {
	if len(reqs) == 0 {
		return nil, derrors.New(derrors.CodeInvalidArgument, "batch is empty")
	}
	for i := 1; i < len(reqs); i++ {
		if reqs[i].IssuerDID != reqs[0].IssuerDID {
			return nil, derrors.New(derrors.CodeInvalidArgument, "batch requests must share one issuer DID")
		}
	}
	return s.mint(ctx, caller, reqs, audit.EventBatchMinted)
}

func (s *Service) mint(ctx context.Context, caller string, reqs []models.MintRequest, action audit.Action) ([]models.MintReceipt, error) {
	ctx, span := tracer.Start(ctx, "registry.mint")
	defer span.End()
	span.SetAttributes(attribute.Int("asset.count", len(reqs)))

	if err := s.requireOwner(caller); err != nil {
		s.metrics.IncrementMint("unauthorized")
		return nil, err
	}

	mintedAt := s.now()
	records := make([]*models.AssetRecord, 0, len(reqs))
	seen := make(map[fingerprint.Fingerprint]struct{}, len(reqs))
	for i := range reqs {
		req := reqs[i]
		req.Normalize()
		if err := req.Validate(); err != nil {
			s.metrics.IncrementMint("error")
			return nil, err
		}

		fp := fingerprint.New(req.RawIdentifier)
		// Stores only reject collisions against existing records; two
		// identical identifiers inside one batch must be caught here.
		if _, ok := seen[fp]; ok {
			s.metrics.IncrementMint("duplicate")
			return nil, derrors.New(derrors.CodeDuplicateAsset, "duplicate identifier in batch")
		}
		seen[fp] = struct{}{}

		records = append(records, &models.AssetRecord{
			Fingerprint: fp,
			IssuerDID:   req.IssuerDID,
			OwnerRef:    req.OwnerRef,
			AssetType:   req.AssetType,
			MintedAt:    mintedAt,
			ExpiryAt:    req.ExpiryAt,
			MetadataRef: req.MetadataRef,
			Status:      models.StatusActive,
		})
	}

	if s.issuers != nil {
		ok, err := s.issuers.IsAuthorized(ctx, records[0].IssuerDID)
		if err != nil {
			s.metrics.IncrementMint("error")
			return nil, err
		}
		if !ok {
			s.metrics.IncrementMint("unauthorized")
			return nil, derrors.New(derrors.CodeUnauthorized, "issuer is not authorized to mint")
		}
	}

	start := s.now()
	txID, err := s.store.PutBatch(ctx, records)
	if err != nil {
		s.metrics.IncrementMint(mintFailureLabel(err))
		return nil, storeError(err, "mint asset")
	}
	s.metrics.ObserveConfirmLatency(time.Since(start))

	receipts := make([]models.MintReceipt, 0, len(records))
	for _, record := range records {
		receipts = append(receipts, models.MintReceipt{
			Fingerprint: record.Fingerprint,
			TokenID:     record.Fingerprint.Hex(),
			TxID:        txID,
			Confirmed:   true,
		})
		s.metrics.IncrementMint("ok")
		s.emitAsset(ctx, action, record, txID)
	}

	s.logger.InfoContext(ctx, "assets minted",
		"count", len(records),
		"issuer_did", records[0].IssuerDID,
		"tx_id", txID,
		"network", s.store.Network(),
		"request_id", middleware.GetRequestID(ctx),
	)
	return receipts, nil
}

// Revoke moves the record to its terminal state. The transition is monotonic:
// revoking twice fails with AlreadyRevoked.
func (s *Service) Revoke(ctx context.Context, caller, tokenID string) error {
	ctx, span := tracer.Start(ctx, "registry.revoke")
	defer span.End()
	span.SetAttributes(attribute.String("asset.token_id", tokenID))

	if err := s.requireOwner(caller); err != nil {
		s.metrics.IncrementRevocation("unauthorized")
		return err
	}

	fp, err := fingerprint.ParseHex(tokenID)
	if err != nil {
		s.metrics.IncrementRevocation("error")
		return derrors.New(derrors.CodeInvalidArgument, "malformed token ID")
	}

	record, err := s.store.Get(ctx, fp)
	if err != nil {
		s.metrics.IncrementRevocation("error")
		return storeError(err, "load asset for revocation")
	}

	revokedAt := s.now()
	if err := s.store.MarkRevoked(ctx, fp, revokedAt); err != nil {
		s.metrics.IncrementRevocation(revokeFailureLabel(err))
		return storeError(err, "revoke asset")
	}
	s.metrics.IncrementRevocation("ok")

	record.Status = models.StatusRevoked
	record.RevokedAt = revokedAt
	s.emitAsset(ctx, audit.EventAssetRevoked, record, "")

	s.logger.InfoContext(ctx, "asset revoked",
		"token_id", tokenID,
		"issuer_did", record.IssuerDID,
		"network", s.store.Network(),
		"request_id", middleware.GetRequestID(ctx),
	)
	return nil
}

// Verify answers whether the identifier maps to an active, non-expired,
// non-revoked record. A miss is a successful answer with Found=false and a
// zero fingerprint, never an error.
func (s *Service) Verify(ctx context.Context, rawIdentifier string) (*models.VerifyResult, error) {
	detailed, err := s.DetailedVerify(ctx, rawIdentifier)
	if err != nil {
		return nil, err
	}
	return &detailed.VerifyResult, nil
}

// DetailedVerify is Verify with the failure reasons decomposed, so a caller
// can tell the holder whether the record is missing, expired or revoked.
func (s *Service) DetailedVerify(ctx context.Context, rawIdentifier string) (*models.DetailedVerifyResult, error) {
	ctx, span := tracer.Start(ctx, "registry.verify")
	defer span.End()

	now := s.now()
	fp := fingerprint.New(rawIdentifier)
	span.SetAttributes(attribute.String("asset.token_id", fp.Hex()))

	record, err := s.store.Get(ctx, fp)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementVerification("not_found", s.store.Network())
			return &models.DetailedVerifyResult{
				VerifyResult: models.VerifyResult{CheckedAt: now},
			}, nil
		}
		return nil, storeError(err, "look up asset")
	}

	result := &models.DetailedVerifyResult{
		VerifyResult: models.VerifyResult{
			Fingerprint: record.Fingerprint,
			IssuerDID:   record.IssuerDID,
			OwnerRef:    record.OwnerRef,
			AssetType:   record.AssetType,
			Verified:    record.ValidAt(now),
			Found:       true,
			CheckedAt:   now,
		},
		Expired:   record.ExpiredAt(now),
		Revoked:   record.Revoked(),
		MintedAt:  record.MintedAt,
		ExpiryAt:  record.ExpiryAt,
		RevokedAt: record.RevokedAt,
	}
	s.metrics.IncrementVerification(verificationOutcome(result), s.store.Network())
	return result, nil
}

// Get returns the full record for a token ID, for the asset lookup endpoint.
func (s *Service) Get(ctx context.Context, tokenID string) (*models.AssetRecord, error) {
	fp, err := fingerprint.ParseHex(tokenID)
	if err != nil {
		return nil, derrors.New(derrors.CodeInvalidArgument, "malformed token ID")
	}
	record, err := s.store.Get(ctx, fp)
	if err != nil {
		return nil, storeError(err, "load asset")
	}
	return record, nil
}

func (s *Service) requireOwner(caller string) error {
	if s.ownerRef == "" || caller != s.ownerRef {
		return derrors.New(derrors.CodeUnauthorized, "caller is not the registry owner")
	}
	return nil
}

func (s *Service) emitAsset(ctx context.Context, action audit.Action, record *models.AssetRecord, txID string) {
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:      action,
		TokenID:     record.Fingerprint.Hex(),
		IssuerDID:   record.IssuerDID,
		OwnerRef:    record.OwnerRef,
		AssetType:   record.AssetType,
		MintedAt:    record.MintedAt,
		ExpiryAt:    record.ExpiryAt,
		MetadataRef: record.MetadataRef,
		RevokedAt:   record.RevokedAt,
		TxID:        txID,
		Network:     s.store.Network(),
		RequestID:   middleware.GetRequestID(ctx),
		Client:      middleware.GetClient(ctx).String(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(action),
			"token_id", record.Fingerprint.Hex(),
			"error", err,
		)
	}
}

// storeError translates the store's sentinel errors into the domain taxonomy.
func storeError(err error, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrDuplicate):
		return derrors.New(derrors.CodeDuplicateAsset, "identifier is already minted")
	case errors.Is(err, sentinel.ErrNotFound):
		return derrors.New(derrors.CodeNotFound, "asset not found")
	case errors.Is(err, sentinel.ErrAlreadyRevoked):
		return derrors.New(derrors.CodeAlreadyRevoked, "asset is already revoked")
	case errors.Is(err, context.DeadlineExceeded):
		return derrors.Wrap(err, derrors.CodeTimeout, "ledger did not confirm in time")
	case errors.Is(err, sentinel.ErrUnavailable):
		return derrors.Wrap(err, derrors.CodeUnavailable, "ledger backend unavailable")
	default:
		return derrors.Wrap(err, derrors.CodeInternal, "failed to "+action)
	}
}

func mintFailureLabel(err error) string {
	if errors.Is(err, sentinel.ErrDuplicate) {
		return "duplicate"
	}
	return "error"
}

func revokeFailureLabel(err error) string {
	if errors.Is(err, sentinel.ErrAlreadyRevoked) {
		return "already_revoked"
	}
	return "error"
}

func verificationOutcome(result *models.DetailedVerifyResult) string {
	switch {
	case result.Revoked:
		return "revoked"
	case result.Expired:
		return "expired"
	default:
		return "verified"
	}
}
