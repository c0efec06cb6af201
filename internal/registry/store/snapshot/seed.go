package snapshot

import (
	"time"

	"attest/internal/fingerprint"
	"attest/internal/registry/models"
)

// DemoSeed returns the fixed record set the snapshot store serves when the
// ledger is unreachable. The entries mirror assets registered on the demo
// ledger so offline verification stays useful at exhibitions and demos.
func DemoSeed() []models.AssetRecord {
	mintedAt := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	seed := []struct {
		identifier  string
		issuerDID   string
		ownerRef    string
		assetType   string
		expiryAt    time.Time
		metadataRef string
		revoked     bool
	}{
		{
			identifier:  "DEGREE-MIT-2024-001",
			issuerDID:   "did:x:mit",
			ownerRef:    "addr:holder:0x4c2a",
			assetType:   "diploma",
			metadataRef: "ipfs://bafybeialpha/degree-mit-2024-001.json",
		},
		{
			identifier:  "WATCH-ROLEX-8839-X",
			issuerDID:   "did:x:rolex",
			ownerRef:    "addr:holder:0x91fe",
			assetType:   "luxury-watch",
			metadataRef: "ipfs://bafybeibravo/watch-rolex-8839-x.json",
		},
		{
			identifier:  "CERT-ISO9001-ACME-2023",
			issuerDID:   "did:x:tuv",
			ownerRef:    "addr:holder:0x7703",
			assetType:   "certificate",
			expiryAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			metadataRef: "ipfs://bafybeicharlie/cert-iso9001-acme-2023.json",
		},
		{
			identifier:  "DEGREE-MIT-2019-442",
			issuerDID:   "did:x:mit",
			ownerRef:    "addr:holder:0xd0b1",
			assetType:   "diploma",
			metadataRef: "ipfs://bafybeidelta/degree-mit-2019-442.json",
			revoked:     true,
		},
	}

	records := make([]models.AssetRecord, 0, len(seed))
	for _, s := range seed {
		rec := models.AssetRecord{
			Fingerprint: fingerprint.New(s.identifier),
			IssuerDID:   s.issuerDID,
			OwnerRef:    s.ownerRef,
			AssetType:   s.assetType,
			MintedAt:    mintedAt,
			ExpiryAt:    s.expiryAt,
			MetadataRef: s.metadataRef,
			Status:      models.StatusActive,
		}
		if s.revoked {
			rec.Status = models.StatusRevoked
			rec.RevokedAt = mintedAt.AddDate(0, 3, 0)
		}
		records = append(records, rec)
	}
	return records
}
