// Package seed inserts the fixture rows one at a time, logs and skips every
// row the database refuses, and prints each table back.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/sqlerr"
)

// Store is the subset of the SQLite store a run needs.
type Store interface {
	InsertPerson(ctx context.Context, p models.Person) error
	InsertDepartment(ctx context.Context, d models.Department) error
	InsertJob(ctx context.Context, j models.Job) error
	ListPeople(ctx context.Context) ([]models.Person, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListDepartmentJobs(ctx context.Context) ([]models.DepartmentJob, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
}

// Publisher receives one event per insert attempt.
type Publisher interface {
	Publish(ctx context.Context, events ...models.RecordEvent) error
}

// RosterCache keeps the printed lines of each table.
type RosterCache interface {
	Set(ctx context.Context, table string, lines []string) error
}

type Seeder struct {
	store     Store
	variant   models.Variant
	out       io.Writer
	publisher Publisher
	roster    RosterCache
	now       func() time.Time
}

type Option func(*Seeder)

func WithPublisher(p Publisher) Option {
	return func(s *Seeder) { s.publisher = p }
}

func WithRosterCache(c RosterCache) Option {
	return func(s *Seeder) { s.roster = c }
}

func New(store Store, v models.Variant, out io.Writer, opts ...Option) *Seeder {
	s := &Seeder{store: store, variant: v, out: out, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run inserts fx table by table in dependency order and prints every table
// after its inserts. Rejected rows are reported, not returned as errors; an
// error means a table could not be read back.
func (s *Seeder) Run(ctx context.Context, fx Fixtures) (*Report, error) {
	report := &Report{Variant: s.variant}
	for _, table := range s.variant.Tables() {
		tr := TableReport{Table: table}
		switch table {
		case models.TablePerson:
			for _, p := range fx.People {
				s.attempt(ctx, &tr, p.Key(), p, s.store.InsertPerson(ctx, p))
			}
		case models.TableDepartment:
			for _, d := range fx.Departments {
				s.attempt(ctx, &tr, d.Key(), d, s.store.InsertDepartment(ctx, d))
			}
		case models.TableJob:
			for _, j := range fx.Jobs {
				s.attempt(ctx, &tr, j.Key(), j, s.store.InsertJob(ctx, j))
			}
		}
		report.Tables = append(report.Tables, tr)

		if err := s.Show(ctx, table); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *Seeder) attempt(ctx context.Context, tr *TableReport, key string, record interface{}, err error) {
	tr.Attempted++
	var code, reason string
	if err == nil {
		tr.Inserted++
		logging.Debugf("created %s = %s", tr.Table, key)
	} else {
		code, reason = classify(err)
		tr.Rejected = append(tr.Rejected, Rejection{Key: key, Code: code, Reason: reason, Err: err})
		logging.Infof("error creating %s = %s", tr.Table, key)
		logging.Infof("%v", err)
		logging.Infof("%s: %s", code, reason)
	}

	if s.publisher == nil {
		return
	}
	ev := models.NewRecordEvent(tr.Table, key, record, code, reason, s.now())
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logging.Errorf("publish %s event for %s: %v", tr.Table, key, err)
	}
}

func classify(err error) (code, reason string) {
	if models.IsInvalid(err) {
		return "INVALID_RECORD", err.Error()
	}
	return sqlerr.AppCode(err), sqlerr.FriendlyMessage(err)
}

// Show prints every row of table, one per line, and refreshes the roster
// cache when one is set.
func (s *Seeder) Show(ctx context.Context, table string) error {
	lines, err := Lines(ctx, s.store, s.variant, table)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
	if s.roster != nil {
		if err := s.roster.Set(ctx, table, lines); err != nil {
			logging.Errorf("cache %s roster: %v", table, err)
		}
	}
	return nil
}

// Lines renders every row of table. Departments in the job-linked layout
// carry the days their job was held.
func Lines(ctx context.Context, store Store, v models.Variant, table string) ([]string, error) {
	var lines []string
	switch table {
	case models.TablePerson:
		people, err := store.ListPeople(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range people {
			lines = append(lines, p.Show())
		}
	case models.TableDepartment:
		if v == models.VariantJobLinked {
			rows, err := store.ListDepartmentJobs(ctx)
			if err != nil {
				return nil, err
			}
			for _, d := range rows {
				lines = append(lines, d.Show())
			}
			break
		}
		depts, err := store.ListDepartments(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range depts {
			lines = append(lines, d.Show())
		}
	case models.TableJob:
		jobs, err := store.ListJobs(ctx)
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			lines = append(lines, j.Show())
		}
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return lines, nil
}
