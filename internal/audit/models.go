package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names what happened. The set is closed so sinks can route and
// retention policies can key off it.
type Action string

const (
	EventAssetMinted        Action = "asset_minted"
	EventBatchMinted        Action = "batch_minted"
	EventAssetRevoked       Action = "asset_revoked"
	EventIssuerAuthorized   Action = "issuer_authorized"
	EventIssuerDeauthorized Action = "issuer_deauthorized"
)

// Category classifies events for retention and routing. Registry mutations
// carry legal weight (they are the provenance trail) and keep long retention;
// table administration is operational.
type Category string

const (
	CategoryCompliance Category = "compliance"
	CategoryOperations Category = "operations"
)

var categories = map[Action]Category{
	EventAssetMinted:        CategoryCompliance,
	EventBatchMinted:        CategoryCompliance,
	EventAssetRevoked:       CategoryCompliance,
	EventIssuerAuthorized:   CategoryOperations,
	EventIssuerDeauthorized: CategoryOperations,
}

// CategoryOf returns an action's category, defaulting to operations.
func (a Action) Category() Category {
	if c, ok := categories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is emitted from domain logic to capture registry mutations. It is
// append-only and transport-agnostic so stores and sinks can fan out. The
// asset fields carry the full record: a consumer must be able to reconstruct
// the minted record from the event alone.
type Event struct {
	ID        uuid.UUID
	Action    Action
	Timestamp time.Time

	// Asset snapshot at the time of the event.
	TokenID     string
	IssuerDID   string
	OwnerRef    string
	AssetType   string
	MintedAt    time.Time
	ExpiryAt    time.Time
	MetadataRef string
	RevokedAt   time.Time

	// Ledger linkage, empty in demo mode.
	TxID    string
	Network string

	// RequestID correlates the event with the HTTP request that caused it;
	// Client names the calling application parsed from its User-Agent.
	RequestID string
	Client    string
}
