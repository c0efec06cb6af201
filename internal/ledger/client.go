// Package ledger is the JSON-over-HTTP client for the external ledger node
// that anchors the registry contract. The node serializes all writes in total
// order, so the client's job is translation only: submit transactions, poll
// for inclusion, and map the node's rejections onto the shared sentinel
// errors. A circuit breaker guards the read path so a flapping node fails
// fast instead of piling up sockets.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"attest/pkg/platform/circuit"
	"attest/pkg/platform/sentinel"
)

// TxStatus is the ledger's view of a submitted transaction.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxRejected  TxStatus = "rejected"
)

// Status describes the ledger node and the network it follows.
type Status struct {
	Network     string `json:"network"`
	BlockHeight uint64 `json:"blockHeight"`
	Contract    string `json:"contract"`
}

// Asset is the wire form of an asset record as the registry contract stores
// it. TokenID is the hex fingerprint.
type Asset struct {
	TokenID     string     `json:"tokenId"`
	IssuerDID   string     `json:"issuerDid"`
	Owner       string     `json:"owner"`
	AssetType   string     `json:"assetType"`
	MintedAt    time.Time  `json:"mintedAt"`
	ExpiryAt    *time.Time `json:"expiryAt,omitempty"`
	MetadataRef string     `json:"metadataRef,omitempty"`
	Revoked     bool       `json:"revoked"`
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`
}

// Client talks to one ledger node. All methods honor the request context;
// cancellation stops waiting locally but never recalls a submitted
// transaction.
type Client struct {
	baseURL  string
	contract string
	httpc    *http.Client
	breaker  *circuit.Breaker
	logger   *slog.Logger
	// pollInterval controls confirmation polling; overridable in tests.
	pollInterval time.Duration
	// confirmTimeout caps how long WaitForConfirmation blocks; zero means
	// the caller's context is the only bound.
	confirmTimeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Client) { c.confirmTimeout = d }
}

// WithBreaker replaces the read-path circuit breaker; tests pin its clock.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// New constructs a client for the node at baseURL holding the registry
// contract at the given address.
func New(baseURL, contract string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		contract:     contract,
		httpc:        &http.Client{Timeout: 10 * time.Second},
		breaker:      circuit.New("ledger", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2)),
		logger:       slog.Default(),
		pollInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status fetches the node's network identity. Used by the backend selector's
// startup probe and by health reporting.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.get(ctx, "/v1/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetAsset fetches one asset by token ID. Returns sentinel.ErrNotFound when
// the contract holds no such token.
func (c *Client) GetAsset(ctx context.Context, tokenID string) (*Asset, error) {
	if c.breaker.IsOpen() {
		return nil, fmt.Errorf("ledger read: circuit open: %w", sentinel.ErrUnavailable)
	}

	var reply struct {
		Asset Asset `json:"asset"`
	}
	err := c.get(ctx, "/v1/contracts/"+c.contract+"/assets/"+tokenID, &reply)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			c.breaker.RecordSuccess()
			return nil, sentinel.ErrNotFound
		}
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.Warn("ledger read circuit opened", "base_url", c.baseURL)
		}
		return nil, err
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.Info("ledger read circuit closed", "base_url", c.baseURL)
	}
	return &reply.Asset, nil
}

// SubmitMint submits one transaction minting all given assets. The whole
// batch is accepted or rejected by the contract as a unit.
func (c *Client) SubmitMint(ctx context.Context, assets []Asset) (string, error) {
	body := struct {
		Assets []Asset `json:"assets"`
	}{Assets: assets}
	return c.submit(ctx, "/v1/contracts/"+c.contract+"/mint", body)
}

// SubmitRevoke submits a revocation transaction for one token.
func (c *Client) SubmitRevoke(ctx context.Context, tokenID string, at time.Time) (string, error) {
	body := struct {
		TokenID   string    `json:"tokenId"`
		RevokedAt time.Time `json:"revokedAt"`
	}{TokenID: tokenID, RevokedAt: at}
	return c.submit(ctx, "/v1/contracts/"+c.contract+"/revoke", body)
}

// TxStatus polls the status of a submitted transaction.
func (c *Client) TxStatus(ctx context.Context, txID string) (TxStatus, error) {
	var reply struct {
		Status TxStatus `json:"status"`
		Reason string   `json:"reason"`
	}
	if err := c.get(ctx, "/v1/tx/"+txID, &reply); err != nil {
		return "", err
	}
	if reply.Status == TxRejected {
		return TxRejected, rejectionError(reply.Reason)
	}
	return reply.Status, nil
}

// WaitForConfirmation blocks until the transaction is included, rejected, or
// the context expires. A context error means only that the caller stopped
// waiting: the transaction may still land later.
func (c *Client) WaitForConfirmation(ctx context.Context, txID string) error {
	if c.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.TxStatus(ctx, txID)
		if err != nil {
			return err
		}
		if status == TxConfirmed {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation of tx %s: %w", txID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) submit(ctx context.Context, path string, body any) (string, error) {
	var reply struct {
		TxID string `json:"txId"`
	}
	if err := c.post(ctx, path, body, &reply); err != nil {
		switch statusOf(err) {
		case http.StatusConflict:
			return "", sentinel.ErrDuplicate
		case http.StatusNotFound:
			return "", sentinel.ErrNotFound
		case http.StatusGone:
			return "", sentinel.ErrAlreadyRevoked
		}
		return "", err
	}
	return reply.TxID, nil
}

// httpError carries a non-2xx node response so callers can branch on status.
type httpError struct {
	status int
	body   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("ledger responded %d: %s", e.status, e.body)
}

func statusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}
	return 0
}

func rejectionError(reason string) error {
	switch reason {
	case "duplicate":
		return sentinel.ErrDuplicate
	case "already_revoked":
		return sentinel.ErrAlreadyRevoked
	case "not_found":
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("transaction rejected: %s", reason)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("ledger request %s: %v: %w", req.URL.Path, err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &httpError{status: resp.StatusCode, body: string(bytes.TrimSpace(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ledger response %s: %w", req.URL.Path, err)
	}
	return nil
}
