package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hetulpatel/personjob/internal/kafka"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
)

type Handler func(context.Context, *models.RecordEvent) error

// messageReader is the part of *kafkago.Reader consume uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
}

func Run(ctx context.Context, brokers []string, topic, group string, workerCount int, handler Handler) {
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			reader := kafka.NewReader(brokers, topic, group)
			defer reader.Close()
			logging.Debugf("worker %d reading %s as %s", id, topic, group)
			consume(ctx, reader, handler)
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
}

func consume(ctx context.Context, reader messageReader, handler Handler) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.Errorf("worker read error: %v", err)
			continue
		}

		ev, err := Decode(msg)
		if err != nil {
			logging.Errorf("worker unmarshal error: %v", err)
			continue
		}

		if handler != nil {
			if err := handler(ctx, ev); err != nil {
				logging.Errorf("worker handler error: %v", err)
			}
		}
	}
}

// Decode parses a record event message.
func Decode(msg kafkago.Message) (*models.RecordEvent, error) {
	var ev models.RecordEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return nil, fmt.Errorf("decode record event at offset %d: %w", msg.Offset, err)
	}
	if ev.Table == "" || ev.Key == "" {
		return nil, fmt.Errorf("record event at offset %d has no table or key", msg.Offset)
	}
	return &ev, nil
}
