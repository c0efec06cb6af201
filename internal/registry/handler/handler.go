// Package handler is the HTTP façade over the registry service. The public
// surface is unauthenticated verification; the admin surface carries the
// owner-gated mint, revoke and issuer table operations behind bearer auth.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"attest/internal/platform/metrics"
	"attest/internal/platform/middleware"
	"attest/internal/ratelimit"
	"attest/internal/registry/models"
	derrors "attest/pkg/domain-errors"
	"attest/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,IssuerService,Backend,TokenIssuer

const ownerTokenTTL = time.Hour

// Service defines the registry operations the façade exposes.
type Service interface {
	Mint(ctx context.Context, caller string, req models.MintRequest) (*models.MintReceipt, error)
	BatchMint(ctx context.Context, caller string, reqs []models.MintRequest) ([]models.MintReceipt, error)
	Revoke(ctx context.Context, caller, tokenID string) error
	Verify(ctx context.Context, rawIdentifier string) (*models.VerifyResult, error)
	DetailedVerify(ctx context.Context, rawIdentifier string) (*models.DetailedVerifyResult, error)
	Get(ctx context.Context, tokenID string) (*models.AssetRecord, error)
	Network() string
}

// IssuerService manages the issuer authorization table.
type IssuerService interface {
	Authorize(ctx context.Context, issuerDID string) error
	Deauthorize(ctx context.Context, issuerDID string) error
}

// Backend reports the selector's startup binding for health responses.
type Backend interface {
	Network() string
	Connected() bool
}

// TokenIssuer mints owner access tokens after a successful admin login.
type TokenIssuer interface {
	GenerateOwnerToken(ownerRef string, expiresIn time.Duration) (string, error)
}

// Handler handles the registry's HTTP endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     Service
	issuers      IssuerService
	backend      Backend
	metrics      *metrics.Metrics
	validator    middleware.TokenValidator
	tokens       TokenIssuer
	limiter      *ratelimit.Middleware
	adminKeyHash []byte
	ownerRef     string
}

// Config carries the façade's dependencies.
type Config struct {
	Registry  Service
	Issuers   IssuerService
	Backend   Backend
	Metrics   *metrics.Metrics
	Validator middleware.TokenValidator
	Tokens    TokenIssuer
	Limiter   *ratelimit.Middleware
	// AdminKeyHash is the bcrypt hash of the admin key exchanged for owner
	// tokens at /admin/login.
	AdminKeyHash []byte
	OwnerRef     string
}

// New creates the registry Handler.
func New(cfg Config, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		registry:     cfg.Registry,
		issuers:      cfg.Issuers,
		backend:      cfg.Backend,
		metrics:      cfg.Metrics,
		validator:    cfg.Validator,
		tokens:       cfg.Tokens,
		limiter:      cfg.Limiter,
		adminKeyHash: cfg.AdminKeyHash,
		ownerRef:     cfg.OwnerRef,
	}
}

// Register wires the public and admin routes onto the router.
func (h *Handler) Register(r chi.Router) {
	public := chi.NewRouter()
	public.Use(middleware.Recovery(h.logger))
	public.Use(middleware.RequestID)
	public.Use(middleware.ClientMetadata)
	public.Use(middleware.Logger(h.logger))
	public.Use(middleware.Timeout(10 * time.Second))
	public.Use(middleware.ContentTypeJSON)
	public.Use(middleware.LatencyMiddleware(h.metrics))

	public.Get("/health", h.handleHealth)
	public.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.Limit)
		}
		r.Post("/verify", h.handleVerify)
		r.Post("/verify/detailed", h.handleDetailedVerify)
		r.Get("/asset/{tokenId}", h.handleGetAsset)
	})
	r.Mount("/", public)

	admin := chi.NewRouter()
	admin.Use(middleware.Recovery(h.logger))
	admin.Use(middleware.RequestID)
	admin.Use(middleware.ClientMetadata)
	admin.Use(middleware.Logger(h.logger))
	// Mint and revoke block until ledger confirmation; give them room.
	admin.Use(middleware.Timeout(60 * time.Second))
	admin.Use(middleware.ContentTypeJSON)
	admin.Use(middleware.LatencyMiddleware(h.metrics))

	admin.Post("/login", h.handleLogin)
	admin.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/assets", h.handleMint)
		r.Post("/assets/batch", h.handleBatchMint)
		r.Post("/assets/{tokenId}/revoke", h.handleRevoke)
		r.Put("/issuers/{did}", h.handleAuthorizeIssuer)
		r.Delete("/issuers/{did}", h.handleDeauthorizeIssuer)
	})
	r.Mount("/admin", admin)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "invalid request body"))
		return
	}
	if emptyIdentifier(req.UniqueID) {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "uniqueId is required"))
		return
	}

	result, err := h.registry.Verify(ctx, req.UniqueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newVerifyResponse(result, h.registry.Network()))
}

func (h *Handler) handleDetailedVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "invalid request body"))
		return
	}
	if emptyIdentifier(req.UniqueID) {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "uniqueId is required"))
		return
	}

	result, err := h.registry.DetailedVerify(ctx, req.UniqueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "detailed verification failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newDetailedVerifyResponse(result, h.registry.Network()))
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	record, err := h.registry.Get(r.Context(), chi.URLParam(r, "tokenId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAssetResponse(record, h.registry.Network()))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	blockchain := "demo-mode"
	if h.backend.Connected() {
		blockchain = "connected"
	}
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Blockchain: blockchain,
		Timestamp:  time.Now().UTC(),
	})
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	receipt, err := h.registry.Mint(ctx, middleware.GetCaller(ctx), req.toModel())
	if err != nil {
		h.logger.WarnContext(ctx, "mint rejected",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, newMintResponse(receipt, h.registry.Network()))
}

func (h *Handler) handleBatchMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BatchMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	reqs := make([]models.MintRequest, 0, len(req.Assets))
	for _, asset := range req.Assets {
		reqs = append(reqs, asset.toModel())
	}

	receipts, err := h.registry.BatchMint(ctx, middleware.GetCaller(ctx), reqs)
	if err != nil {
		h.logger.WarnContext(ctx, "batch mint rejected",
			"error", err,
			"count", len(req.Assets),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	resp := BatchMintResponse{Status: "success", BlockchainNetwork: h.registry.Network()}
	for i := range receipts {
		resp.Assets = append(resp.Assets, newMintResponse(&receipts[i], h.registry.Network()))
	}
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tokenID := chi.URLParam(r, "tokenId")

	if err := h.registry.Revoke(ctx, middleware.GetCaller(ctx), tokenID); err != nil {
		h.logger.WarnContext(ctx, "revocation rejected",
			"error", err,
			"token_id", tokenID,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RevokeResponse{
		Status:    "success",
		TokenID:   tokenID,
		RevokedAt: time.Now().UTC(),
	})
}

func (h *Handler) handleAuthorizeIssuer(w http.ResponseWriter, r *http.Request) {
	if err := h.issuers.Authorize(r.Context(), chi.URLParam(r, "did")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeauthorizeIssuer(w http.ResponseWriter, r *http.Request) {
	if err := h.issuers.Deauthorize(r.Context(), chi.URLParam(r, "did")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	if len(h.adminKeyHash) == 0 ||
		bcrypt.CompareHashAndPassword(h.adminKeyHash, []byte(req.AdminKey)) != nil {
		h.logger.WarnContext(ctx, "admin login rejected",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, derrors.New(derrors.CodeUnauthorized, "invalid admin key"))
		return
	}

	token, err := h.tokens.GenerateOwnerToken(h.ownerRef, ownerTokenTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue owner token",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, derrors.Wrap(err, derrors.CodeInternal, "failed to issue token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ownerTokenTTL.Seconds()),
	})
}
