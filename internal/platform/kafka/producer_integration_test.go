//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"rtwgate/pkg/testutil/containers"
)

func TestProducer_PublishIsConsumable(t *testing.T) {
	rp := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	producer, err := NewProducer([]string{rp.Broker}, "rtw.audit.test")
	require.NoError(t, err)
	defer producer.Close()
	require.NoError(t, producer.Health(ctx))
	require.NoError(t, producer.EnsureTopic(ctx, 3, 1))
	require.NoError(t, producer.EnsureTopic(ctx, 3, 1), "existing topic is not an error")

	require.NoError(t, producer.Publish(ctx, "tenant-1", []byte(`{"action":"rtw_check_recorded"}`),
		map[string]string{"event_type": "rtw_check_recorded"}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics("rtw.audit.test"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "tenant-1", string(records[0].Key))
	require.Len(t, records[0].Headers, 1)
	assert.Equal(t, "event_type", records[0].Headers[0].Key)
}

func TestNewProducer_NoBrokers(t *testing.T) {
	p, err := NewProducer(nil, "rtw.audit")
	require.NoError(t, err)
	assert.Nil(t, p)
}
