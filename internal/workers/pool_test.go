package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/queue"
)

// scriptedReader replays messages, then blocks until ctx is done.
type scriptedReader struct {
	msgs []kafkago.Message
	errs []error
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafkago.Message{}, err
	}
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		return msg, nil
	}
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func TestConsumeFeedsAuditor(t *testing.T) {
	at := time.Now()
	msgs, err := queue.Messages(
		models.NewRecordEvent(models.TablePerson, "Andrew", nil, "", "", at),
		models.NewRecordEvent(models.TablePerson, "Peter", nil, "PERSON_ALREADY_EXISTS", "dup", at),
		models.NewRecordEvent(models.TableJob, "Developer", nil, "JOB_REFERENCE_NOT_FOUND", "missing", at),
	)
	require.NoError(t, err)
	msgs = append(msgs, kafkago.Message{Value: []byte("not json")})
	reader := &scriptedReader{msgs: msgs, errs: []error{errors.New("transient")}}

	auditor := NewAuditor()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consume(ctx, reader, auditor.Handle)
		close(done)
	}()

	require.Eventually(t, func() bool {
		total := 0
		for _, tally := range auditor.Tallies() {
			total += tally.Inserted + tally.Rejected
		}
		return total == 3
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []Tally{
		{Table: models.TableJob, Rejected: 1},
		{Table: models.TablePerson, Inserted: 1, Rejected: 1},
	}, auditor.Tallies())
}

func TestDecodeRequiresTableAndKey(t *testing.T) {
	_, err := Decode(kafkago.Message{Value: []byte(`{"table":"person"}`)})
	assert.Error(t, err)

	ev, err := Decode(kafkago.Message{Value: []byte(`{"table":"person","key":"Susan","outcome":"inserted"}`)})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeInserted, ev.Outcome)
}
