package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Kind names a persisted collection slot. Each kind is saved and loaded
// independently; a save replaces the slot's previous contents wholesale.
type Kind string

const (
	KindTasks      Kind = "tasks"
	KindCategories Kind = "categories"
	KindTags       Kind = "tags"
	KindTheme      Kind = "theme"
	KindStatistics Kind = "statistics"
)

// Kinds lists every collection slot the store manages
var Kinds = []Kind{KindTasks, KindCategories, KindTags, KindTheme, KindStatistics}

// Store persists whole collections as JSON blobs, one slot per kind.
// There are no partial writes and no transactions across kinds: each save is
// a single-row replacement, which is all the atomicity callers rely on.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todomaster"
	}
	return filepath.Join(home, ".local", "share", "todomaster")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "todomaster.db")
}

// Open opens the slot database and runs migrations
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL mode for safer crash recovery
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: sqlDB, logger: logger}

	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate runs database migrations using embedded SQL files
func (s *Store) migrate() error {
	// Silence goose logging (it corrupts TUI output)
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes v and replaces the slot for kind. Callers must not assume
// synchronous durability: a failed write surfaces as an error here, and the
// facade logs it rather than failing the mutation that triggered it.
func (s *Store) Save(kind Kind, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s slot: %w", kind, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO slots (kind, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, string(kind), payload, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write %s slot: %w", kind, err)
	}
	return nil
}

// Load deserializes the slot for kind into out. Missing or corrupt data is
// treated as "no data": out is left at its zero value and no error is
// returned. Only infrastructure failures (a broken connection) are errors.
func (s *Store) Load(kind Kind, out any) error {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM slots WHERE kind = ?`, string(kind)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s slot: %w", kind, err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		s.logger.Warn("discarding corrupt slot",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return nil
	}
	return nil
}

// Clear removes the slot for kind
func (s *Store) Clear(kind Kind) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE kind = ?`, string(kind))
	if err != nil {
		return fmt.Errorf("failed to clear %s slot: %w", kind, err)
	}
	return nil
}

// ClearAll removes every slot
func (s *Store) ClearAll() error {
	for _, kind := range Kinds {
		if err := s.Clear(kind); err != nil {
			return err
		}
	}
	return nil
}
