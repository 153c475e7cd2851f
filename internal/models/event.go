package models

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeRejected Outcome = "rejected"
)

// RecordEvent is the payload placed on the record events topic, one per
// insert attempt.
type RecordEvent struct {
	ID          string      `json:"id"`
	Table       string      `json:"table"`
	Key         string      `json:"key"`
	Outcome     Outcome     `json:"outcome"`
	Code        string      `json:"code,omitempty"`
	Reason      string      `json:"reason,omitempty"`
	Record      interface{} `json:"record"`
	AttemptedAt time.Time   `json:"attempted_at"`
}

// NewRecordEvent describes an insert of record into table. An empty code
// means the insert succeeded.
func NewRecordEvent(table, key string, record interface{}, code, reason string, at time.Time) RecordEvent {
	outcome := OutcomeInserted
	if code != "" {
		outcome = OutcomeRejected
	}
	return RecordEvent{
		ID:          uuid.NewString(),
		Table:       table,
		Key:         key,
		Outcome:     outcome,
		Code:        code,
		Reason:      reason,
		Record:      record,
		AttemptedAt: at.UTC(),
	}
}
