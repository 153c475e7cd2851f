package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hetulpatel/personjob/internal/models"
)

const (
	defaultPath = "personjob.db"
	driverName  = "sqlite"
)

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// Store wraps a SQLite DB connection.
type Store struct {
	path    string
	db      *sqlx.DB
	variant models.Variant
}

// Reset removes the database file at path and its WAL side files so the next
// Open starts from an empty database. Missing files are not an error.
func Reset(path string) error {
	if path == "" {
		path = defaultPath
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

// Open creates (if needed) and opens the SQLite database with foreign key
// enforcement on.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}
	db, err := sqlx.Open(driverName, path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection for the whole run; the pragmas below are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sqlx.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ForeignKeysEnabled reports the connection's foreign_keys pragma.
func (s *Store) ForeignKeysEnabled(ctx context.Context) (bool, error) {
	var on int
	if err := s.db.GetContext(ctx, &on, "PRAGMA foreign_keys;"); err != nil {
		return false, err
	}
	return on == 1, nil
}

// CreateTables creates the person, department and job tables for v.
func (s *Store) CreateTables(ctx context.Context, v models.Variant) error {
	schema, err := schemaFor(v)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create %s tables: %w", v, err)
	}
	s.variant = v
	return nil
}

// DropTables removes all three tables regardless of layout. Foreign keys are
// switched back on even when a drop fails.
func (s *Store) DropTables(ctx context.Context) (err error) {
	if _, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = OFF;`); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer func() {
		if _, fkErr := s.db.ExecContext(context.WithoutCancel(ctx), `PRAGMA foreign_keys = ON;`); fkErr != nil && err == nil {
			err = fmt.Errorf("enable foreign keys: %w", fkErr)
		}
	}()

	for _, table := range []string{models.TableJob, models.TableDepartment, models.TablePerson} {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+";"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	s.variant = ""
	return nil
}

// ClearTables deletes every row, children before parents.
func (s *Store) ClearTables(ctx context.Context) error {
	v, err := s.Variant(ctx)
	if err != nil {
		return err
	}
	tables := v.Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+tables[i]+";"); err != nil {
			return fmt.Errorf("clear %s: %w", tables[i], err)
		}
	}
	return nil
}

// Migrate drops whatever layout exists and creates the tables for v.
func (s *Store) Migrate(ctx context.Context, v models.Variant) error {
	if _, err := schemaFor(v); err != nil {
		return err
	}
	if err := s.DropTables(ctx); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return s.CreateTables(ctx, v)
}

// ErrNoSchema is returned when the database has no person/job tables.
var ErrNoSchema = errors.New("database has no person/job schema")

// Variant reports the layout of the existing tables.
func (s *Store) Variant(ctx context.Context) (models.Variant, error) {
	if s.variant != "" {
		return s.variant, nil
	}
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM pragma_table_info('department') WHERE name = 'job'`)
	if err != nil {
		return "", fmt.Errorf("inspect department: %w", err)
	}
	if n > 0 {
		s.variant = models.VariantJobLinked
		return s.variant, nil
	}
	err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM pragma_table_info('job') WHERE name = 'dept_name_for_job'`)
	if err != nil {
		return "", fmt.Errorf("inspect job: %w", err)
	}
	if n > 0 {
		s.variant = models.VariantManaged
		return s.variant, nil
	}
	return "", ErrNoSchema
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	switch table {
	case models.TablePerson, models.TableDepartment, models.TableJob:
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, err
	}
	return n, nil
}
