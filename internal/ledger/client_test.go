package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attest/pkg/platform/circuit"
	"attest/pkg/platform/sentinel"
)

// fakeNode is a minimal ledger node: assets keyed by token ID, transactions
// confirmed after a configurable number of status polls.
type fakeNode struct {
	mu            sync.Mutex
	assets        map[string]Asset
	txPolls       map[string]int
	confirmAfter  int
	rejectReasons map[string]string
	nextTx        int
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		assets:        make(map[string]Asset),
		txPolls:       make(map[string]int),
		rejectReasons: make(map[string]string),
		confirmAfter:  1,
	}
}

func (n *fakeNode) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Status{Network: "attest-testnet", BlockHeight: 42, Contract: "0xc0ffee"})
	})
	mux.HandleFunc("GET /v1/contracts/0xc0ffee/assets/{tokenId}", func(w http.ResponseWriter, r *http.Request) {
		n.mu.Lock()
		asset, ok := n.assets[r.PathValue("tokenId")]
		n.mu.Unlock()
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]Asset{"asset": asset})
	})
	mux.HandleFunc("POST /v1/contracts/0xc0ffee/mint", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Assets []Asset `json:"assets"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		n.mu.Lock()
		defer n.mu.Unlock()
		for _, a := range body.Assets {
			if _, ok := n.assets[a.TokenID]; ok {
				http.Error(w, `{"error":"duplicate"}`, http.StatusConflict)
				return
			}
		}
		for _, a := range body.Assets {
			n.assets[a.TokenID] = a
		}
		n.nextTx++
		txID := "tx-" + string(rune('0'+n.nextTx))
		_ = json.NewEncoder(w).Encode(map[string]string{"txId": txID})
	})
	mux.HandleFunc("POST /v1/contracts/0xc0ffee/revoke", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TokenID   string    `json:"tokenId"`
			RevokedAt time.Time `json:"revokedAt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		n.mu.Lock()
		defer n.mu.Unlock()
		asset, ok := n.assets[body.TokenID]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		if asset.Revoked {
			http.Error(w, `{"error":"already revoked"}`, http.StatusGone)
			return
		}
		asset.Revoked = true
		asset.RevokedAt = &body.RevokedAt
		n.assets[body.TokenID] = asset
		n.nextTx++
		_ = json.NewEncoder(w).Encode(map[string]string{"txId": "tx-revoke"})
	})
	mux.HandleFunc("GET /v1/tx/{txId}", func(w http.ResponseWriter, r *http.Request) {
		txID := r.PathValue("txId")
		n.mu.Lock()
		defer n.mu.Unlock()
		if reason, ok := n.rejectReasons[txID]; ok {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "rejected", "reason": reason})
			return
		}
		n.txPolls[txID]++
		status := TxPending
		if n.txPolls[txID] >= n.confirmAfter {
			status = TxConfirmed
		}
		_ = json.NewEncoder(w).Encode(map[string]TxStatus{"status": status})
	})
	return mux
}

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	srv := httptest.NewServer(node.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, "0xc0ffee", WithPollInterval(time.Millisecond))
}

func TestStatus(t *testing.T) {
	client := newTestClient(t, newFakeNode())

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "attest-testnet", status.Network)
	assert.Equal(t, "0xc0ffee", status.Contract)
}

func TestStatusUnreachableNode(t *testing.T) {
	client := New("http://127.0.0.1:1", "0xc0ffee")

	_, err := client.Status(context.Background())
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestMintAndGetAsset(t *testing.T) {
	client := newTestClient(t, newFakeNode())
	ctx := context.Background()

	txID, err := client.SubmitMint(ctx, []Asset{{
		TokenID:   "aa11",
		IssuerDID: "did:x:mit",
		Owner:     "addr:holder:0x1",
		AssetType: "diploma",
		MintedAt:  time.Now().UTC(),
	}})
	require.NoError(t, err)
	require.NotEmpty(t, txID)
	require.NoError(t, client.WaitForConfirmation(ctx, txID))

	asset, err := client.GetAsset(ctx, "aa11")
	require.NoError(t, err)
	assert.Equal(t, "did:x:mit", asset.IssuerDID)
	assert.False(t, asset.Revoked)
}

func TestMintDuplicateMapsToSentinel(t *testing.T) {
	client := newTestClient(t, newFakeNode())
	ctx := context.Background()

	asset := Asset{TokenID: "bb22", IssuerDID: "did:x:mit", Owner: "o", MintedAt: time.Now()}
	_, err := client.SubmitMint(ctx, []Asset{asset})
	require.NoError(t, err)

	_, err = client.SubmitMint(ctx, []Asset{asset})
	require.ErrorIs(t, err, sentinel.ErrDuplicate)
}

func TestGetAssetNotFound(t *testing.T) {
	client := newTestClient(t, newFakeNode())

	_, err := client.GetAsset(context.Background(), "unknown")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRevokeTranslatesStates(t *testing.T) {
	client := newTestClient(t, newFakeNode())
	ctx := context.Background()
	at := time.Now().UTC()

	_, err := client.SubmitRevoke(ctx, "missing", at)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = client.SubmitMint(ctx, []Asset{{TokenID: "cc33", IssuerDID: "did:x:mit", Owner: "o", MintedAt: at}})
	require.NoError(t, err)

	_, err = client.SubmitRevoke(ctx, "cc33", at)
	require.NoError(t, err)

	_, err = client.SubmitRevoke(ctx, "cc33", at)
	require.ErrorIs(t, err, sentinel.ErrAlreadyRevoked)
}

func TestWaitForConfirmationPollsUntilIncluded(t *testing.T) {
	node := newFakeNode()
	node.confirmAfter = 3
	client := newTestClient(t, node)
	ctx := context.Background()

	txID, err := client.SubmitMint(ctx, []Asset{{TokenID: "dd44", IssuerDID: "did:x:mit", Owner: "o", MintedAt: time.Now()}})
	require.NoError(t, err)
	require.NoError(t, client.WaitForConfirmation(ctx, txID))
}

func TestWaitForConfirmationHonorsDeadline(t *testing.T) {
	node := newFakeNode()
	node.confirmAfter = 1 << 30 // never confirms
	client := newTestClient(t, node)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	txID, err := client.SubmitMint(ctx, []Asset{{TokenID: "ee55", IssuerDID: "did:x:mit", Owner: "o", MintedAt: time.Now()}})
	require.NoError(t, err)

	err = client.WaitForConfirmation(ctx, txID)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForConfirmationSurfacesRejection(t *testing.T) {
	node := newFakeNode()
	node.rejectReasons["tx-1"] = "duplicate"
	client := newTestClient(t, node)
	ctx := context.Background()

	txID, err := client.SubmitMint(ctx, []Asset{{TokenID: "ff66", IssuerDID: "did:x:mit", Owner: "o", MintedAt: time.Now()}})
	require.NoError(t, err)
	require.Equal(t, "tx-1", txID)

	err = client.WaitForConfirmation(ctx, txID)
	require.ErrorIs(t, err, sentinel.ErrDuplicate)
}

func TestReadCircuitOpensOnRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, "0xc0ffee")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.GetAsset(ctx, "any")
		require.Error(t, err)
		require.NotErrorIs(t, err, sentinel.ErrUnavailable)
	}

	// Circuit is open now: reads fail fast as unavailable.
	_, err := client.GetAsset(ctx, "any")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestReadCircuitClosesAfterNodeRecovers(t *testing.T) {
	node := newFakeNode()
	node.assets["aa11"] = Asset{TokenID: "aa11", IssuerDID: "did:x:mit"}

	var failing atomic.Bool
	failing.Store(true)
	inner := node.handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	breaker := circuit.New("ledger",
		circuit.WithFailureThreshold(5),
		circuit.WithCooldown(30*time.Second),
		circuit.WithClock(func() time.Time { return now }),
	)
	client := New(srv.URL, "0xc0ffee", WithBreaker(breaker))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.GetAsset(ctx, "aa11")
		require.Error(t, err)
	}
	_, err := client.GetAsset(ctx, "aa11")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)

	// Node recovers. The cooldown expires, the half-open trial call reaches the
	// node and the read path comes back without a restart.
	failing.Store(false)
	now = now.Add(31 * time.Second)

	asset, err := client.GetAsset(ctx, "aa11")
	require.NoError(t, err)
	assert.Equal(t, "did:x:mit", asset.IssuerDID)
	assert.False(t, breaker.IsOpen())

	_, err = client.GetAsset(ctx, "aa11")
	require.NoError(t, err)
}
