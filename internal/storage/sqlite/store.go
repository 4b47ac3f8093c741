package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/migration"
	"github.com/mayflyapp/mayfly/internal/storage"
	"github.com/mayflyapp/mayfly/internal/utils"
	"github.com/mayflyapp/mayfly/migrations"
)

var _ storage.Provider = (*Store)(nil)

type Store struct {
	path string
	db   *sql.DB
	now  func() time.Time
	loc  *time.Location
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source, mainly so tests can move across calendar days.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLocation sets the timezone that defines the calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// columns lists every column added after the first release. They are checked
// on each startup and added when missing.
func (s *Store) columns() []migration.Column {
	return []migration.Column{
		{Table: "habits", Name: "icon", Definition: "TEXT"},
		{Table: "todos", Name: "order_index", Definition: "INTEGER", Backfill: backfillOrderIndex},
		{Table: "todos", Name: "due_at", Definition: "TEXT"},
		{Table: "todos", Name: "estimated_minutes", Definition: "INTEGER"},
	}
}

// backfillOrderIndex numbers legacy todos in creation order.
func backfillOrderIndex(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT id FROM todos ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for i, id := range ids {
		if _, err := tx.Exec("UPDATE todos SET order_index = ? WHERE id = ?", i, id); err != nil {
			return err
		}
	}
	return nil
}

// Init opens the database on first use and brings the schema up to date.
// Calling it again on an open store is a no-op.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One process, one logical client: a single connection keeps pragmas and
	// transactions on the same handle.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.runMigrations(); err != nil {
		s.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := s.ensureCharacterRow(); err != nil {
		s.Close()
		return fmt.Errorf("failed to initialize character state: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) runMigrations() error {
	_, err := s.migrate(func(msg string) {
		logger.Info(msg)
	})
	return err
}

// Migrate applies pending migrations on an open store, reporting each step to
// logFn, and returns how many versioned migrations and columns were applied.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not initialized")
	}
	return s.migrate(logFn)
}

func (s *Store) migrate(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}

	applied, err := runner.Apply(logFn)
	if err != nil {
		return applied, err
	}

	added := runner.EnsureColumns(s.columns(), func(w *migration.Warning) {
		logger.Warn("Migration warning", "table", w.Table, "column", w.Column, "error", w.Err)
	})
	if added > 0 {
		logFn(fmt.Sprintf("Added %d missing column(s)", added))
	}
	return applied + added, nil
}

func (s *Store) ValidateSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	runner, err := s.runner()
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	for _, col := range s.columns() {
		ok, err := runner.HasColumn(col.Table, col.Name)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", col.Table, err)
		}
		if !ok {
			return fmt.Errorf("column %s.%s is missing", col.Table, col.Name)
		}
	}
	return nil
}

// SchemaVersion reports the applied and the latest known schema versions.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, fmt.Errorf("database not initialized")
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// Today returns the current calendar day in the store's timezone.
func (s *Store) Today() string {
	return utils.DayOf(s.now(), s.loc)
}

func (s *Store) timestamp() string {
	return utils.FormatTimestamp(s.now())
}

// withTx runs fn in a transaction, committing only if fn returns nil.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// requireAffected turns a zero-row write into a wrapped ErrNotFound.
func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

func parseTimestamp(value, field, id string) (time.Time, error) {
	t, err := utils.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s for %s: %w", field, id, err)
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}
