package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic, keyed by token ID so a
// token's provenance trail stays in one partition, in order.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// kafkaEvent is the published JSON shape. Times are RFC3339Nano; zero times
// are omitted.
type kafkaEvent struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Action      string `json:"action"`
	Timestamp   string `json:"timestamp"`
	TokenID     string `json:"tokenId,omitempty"`
	IssuerDID   string `json:"issuerDid,omitempty"`
	OwnerRef    string `json:"ownerRef,omitempty"`
	AssetType   string `json:"assetType,omitempty"`
	MintedAt    string `json:"mintedAt,omitempty"`
	ExpiryAt    string `json:"expiryAt,omitempty"`
	MetadataRef string `json:"metadataRef,omitempty"`
	RevokedAt   string `json:"revokedAt,omitempty"`
	TxID        string `json:"txId,omitempty"`
	Network     string `json:"network,omitempty"`
	RequestID   string `json:"requestId,omitempty"`
	Client      string `json:"client,omitempty"`
}

// NewKafkaSink connects to the brokers and ensures the topic exists.
func NewKafkaSink(ctx context.Context, brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("create audit topic: %w", err)
	}
	for _, ctr := range resp.Sorted() {
		if ctr.Err != nil && !errors.Is(ctr.Err, kerr.TopicAlreadyExists) {
			client.Close()
			return nil, fmt.Errorf("create audit topic %s: %w", ctr.Topic, ctr.Err)
		}
	}

	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(toKafkaEvent(event))
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.TokenID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() {
	s.client.Close()
}

func toKafkaEvent(event Event) kafkaEvent {
	return kafkaEvent{
		ID:          event.ID.String(),
		Category:    string(event.Action.Category()),
		Action:      string(event.Action),
		Timestamp:   event.Timestamp.Format(time.RFC3339Nano),
		TokenID:     event.TokenID,
		IssuerDID:   event.IssuerDID,
		OwnerRef:    event.OwnerRef,
		AssetType:   event.AssetType,
		MintedAt:    formatTime(event.MintedAt),
		ExpiryAt:    formatTime(event.ExpiryAt),
		MetadataRef: event.MetadataRef,
		RevokedAt:   formatTime(event.RevokedAt),
		TxID:        event.TxID,
		Network:     event.Network,
		RequestID:   event.RequestID,
		Client:      event.Client,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
