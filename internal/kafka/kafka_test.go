package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewWriterKeysByHash(t *testing.T) {
	w := NewWriter([]string{"a:9092", "b:9092"}, "personjob.records")
	defer w.Close()

	assert.Equal(t, "personjob.records", w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}

func TestNewReaderConfig(t *testing.T) {
	r := NewReader([]string{"a:9092"}, "personjob.records", "audit")
	defer r.Close()

	cfg := r.Config()
	assert.Equal(t, "audit", cfg.GroupID)
	assert.Equal(t, kafka.FirstOffset, cfg.StartOffset)
}

func TestRequiresBrokers(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, WaitForBroker(ctx, nil))
	assert.Error(t, EnsureTopic(ctx, nil, "personjob.records"))
	assert.Error(t, EnsureTopic(ctx, []string{"a:9092"}, ""))
}
