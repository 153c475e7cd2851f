package seed

import (
	"context"

	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
)

// RosterReader is the read side of the roster cache.
type RosterReader interface {
	Get(ctx context.Context, table string) ([]string, bool, error)
}

// CountingStore is a Store that can report row counts.
type CountingStore interface {
	Store
	Count(ctx context.Context, table string) (int, error)
}

// CachedLines returns the cached rendering of table while it still has as
// many lines as the table has rows; otherwise the rows are read back from
// the store. A nil roster always reads the store.
func CachedLines(ctx context.Context, roster RosterReader, store CountingStore, v models.Variant, table string) ([]string, error) {
	if roster != nil {
		if lines, ok := freshRoster(ctx, roster, store, table); ok {
			logging.Debugf("%s served from roster cache", table)
			return lines, nil
		}
	}
	return Lines(ctx, store, v, table)
}

func freshRoster(ctx context.Context, roster RosterReader, store CountingStore, table string) ([]string, bool) {
	lines, ok, err := roster.Get(ctx, table)
	if err != nil {
		logging.Errorf("read %s roster: %v", table, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	n, err := store.Count(ctx, table)
	if err != nil {
		logging.Errorf("count %s: %v", table, err)
		return nil, false
	}
	if n != len(lines) {
		logging.Debugf("%s roster is stale (%d cached, %d rows)", table, len(lines), n)
		return nil, false
	}
	return lines, true
}
