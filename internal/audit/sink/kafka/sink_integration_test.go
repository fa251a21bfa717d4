//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"acont-edge/internal/audit"
	"acont-edge/internal/audit/sink/kafka"
	"acont-edge/pkg/testutil/containers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

const testTopic = "acont.edge.security.test"

func Test_Sink_PublishesSecurityEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t).Broker
	ctx := context.Background()

	sink, err := kafka.New(ctx, []string{broker}, testTopic)
	require.NoError(t, err)

	event := audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    audit.ActionInvalidCredential,
		Path:      "/fr/admin",
		Locale:    "fr",
		RequestID: "req-7",
	}
	require.NoError(t, sink.Append(ctx, event))
	require.NoError(t, sink.Close(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, string(audit.ActionInvalidCredential), string(records[0].Key))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(records[0].Value, &payload))
	assert.Equal(t, "invalid_credential", payload["action"])
	assert.Equal(t, "/fr/admin", payload["path"])
	assert.Equal(t, "fr", payload["locale"])
	assert.Equal(t, "req-7", payload["request_id"])
	assert.NotEmpty(t, payload["timestamp"])
}

func Test_Sink_CreateExistingTopicIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t).Broker
	ctx := context.Background()

	first, err := kafka.New(ctx, []string{broker}, testTopic)
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second, err := kafka.New(ctx, []string{broker}, testTopic)
	require.NoError(t, err)
	require.NoError(t, second.Close(ctx))
}
