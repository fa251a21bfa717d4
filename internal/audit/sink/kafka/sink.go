// Package kafka publishes security audit events to a Kafka topic for SIEM
// consumption. The edge is fire-and-forget here: delivery retries are the
// client's concern and a dead broker must never block a gate decision.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"acont-edge/internal/audit"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Sink implements audit.Store by producing JSON records to one topic.
type Sink struct {
	client *kgo.Client
	topic  string
}

// New connects to brokers and ensures topic exists. Partition and replication
// defaults are the cluster's; security topics are provisioned properly by ops
// in production, this just keeps dev clusters working.
func New(ctx context.Context, brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, -1, nil, topic); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure topic %s: %w", topic, err)
	}

	return &Sink{client: client, topic: topic}, nil
}

// record is the wire shape published to the topic.
type record struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Path      string `json:"path"`
	Locale    string `json:"locale"`
	Role      string `json:"role,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Target    string `json:"target,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Append produces one event. The produce is asynchronous; errors are reported
// through the client's internal retry and surfaced only in logs.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(record{
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Action:    string(event.Action),
		Path:      event.Path,
		Locale:    event.Locale,
		Role:      event.Role,
		Subject:   event.Subject,
		Target:    event.Target,
		RequestID: event.RequestID,
	})
	if err != nil {
		return fmt.Errorf("marshal security event: %w", err)
	}

	s.client.Produce(ctx, &kgo.Record{
		Topic: s.topic,
		Key:   []byte(string(event.Action)),
		Value: payload,
	}, nil)
	return nil
}

// Flush waits for buffered records, then Close releases the client.
func (s *Sink) Close(ctx context.Context) error {
	err := s.client.Flush(ctx)
	s.client.Close()
	return err
}
