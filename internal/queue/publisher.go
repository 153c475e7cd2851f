package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/personjob/internal/hashutil"
	"github.com/hetulpatel/personjob/internal/models"
)

// MessageKey groups every event about one row on the same partition.
func MessageKey(ev models.RecordEvent) []byte {
	return []byte(hashutil.ShortHash(ev.Table, ev.Key))
}

// Messages encodes record events as Kafka messages.
func Messages(events ...models.RecordEvent) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("marshal %s event %s: %w", ev.Table, ev.Key, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   MessageKey(ev),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "table", Value: []byte(ev.Table)},
				{Key: "outcome", Value: []byte(ev.Outcome)},
			},
		})
	}
	return msgs, nil
}

func PublishRecords(ctx context.Context, writer *kafka.Writer, events ...models.RecordEvent) error {
	if writer == nil || len(events) == 0 {
		return nil
	}
	msgs, err := Messages(events...)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msgs...)
}

// Publisher sends record events through a Kafka writer.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, events ...models.RecordEvent) error {
	if p == nil {
		return nil
	}
	return PublishRecords(ctx, p.writer, events...)
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
