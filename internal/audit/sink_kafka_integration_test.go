//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"attest/internal/audit"
	"attest/pkg/testutil/containers"
)

func TestKafkaSinkPublishesKeyedByToken(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "attest.audit.test"
	sink, err := audit.NewKafkaSink(ctx, rp.Brokers, topic)
	require.NoError(t, err)
	t.Cleanup(sink.Close)

	event := audit.Event{
		ID:        uuid.New(),
		Action:    audit.EventAssetMinted,
		Timestamp: time.Now().UTC(),
		TokenID:   "tok-kafka-1",
		IssuerDID: "did:x:mit",
		AssetType: "diploma",
	}
	require.NoError(t, sink.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)

	require.Equal(t, []byte("tok-kafka-1"), records[0].Key,
		"events are keyed by token so a trail stays in one partition")

	var payload map[string]any
	require.NoError(t, json.Unmarshal(records[0].Value, &payload))
	require.Equal(t, event.ID.String(), payload["id"])
	require.Equal(t, "asset_minted", payload["action"])
	require.Equal(t, "compliance", payload["category"])
	require.Equal(t, "did:x:mit", payload["issuerDid"])
	require.NotContains(t, payload, "revokedAt", "zero times are omitted")
}

func TestKafkaSinkTopicAlreadyExists(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "attest.audit.existing"
	first, err := audit.NewKafkaSink(ctx, rp.Brokers, topic)
	require.NoError(t, err)
	first.Close()

	second, err := audit.NewKafkaSink(ctx, rp.Brokers, topic)
	require.NoError(t, err, "an existing topic is not an error")
	second.Close()
}
