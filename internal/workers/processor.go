package workers

import (
	"context"
	"sort"
	"sync"

	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
)

// Auditor logs every record event and keeps per-table tallies.
type Auditor struct {
	mu       sync.Mutex
	inserted map[string]int
	rejected map[string]int
}

func NewAuditor() *Auditor {
	return &Auditor{inserted: map[string]int{}, rejected: map[string]int{}}
}

func (a *Auditor) Handle(_ context.Context, ev *models.RecordEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch ev.Outcome {
	case models.OutcomeRejected:
		a.rejected[ev.Table]++
		logging.Infof("[audit] %s %s rejected at %s: %s (%s)",
			ev.Table, ev.Key, ev.AttemptedAt.Format("15:04:05"), ev.Code, ev.Reason)
	default:
		a.inserted[ev.Table]++
		logging.Infof("[audit] %s %s inserted at %s", ev.Table, ev.Key, ev.AttemptedAt.Format("15:04:05"))
	}
	return nil
}

// Tally is the count of inserted and rejected rows for one table.
type Tally struct {
	Table    string
	Inserted int
	Rejected int
}

// Tallies returns counts per table sorted by table name.
func (a *Auditor) Tallies() []Tally {
	a.mu.Lock()
	defer a.mu.Unlock()

	seen := map[string]bool{}
	for t := range a.inserted {
		seen[t] = true
	}
	for t := range a.rejected {
		seen[t] = true
	}
	out := make([]Tally, 0, len(seen))
	for t := range seen {
		out = append(out, Tally{Table: t, Inserted: a.inserted[t], Rejected: a.rejected[t]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out
}
