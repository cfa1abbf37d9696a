package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/domain/types"
)

const execTimeout = 10 * time.Second

// migration is one versioned schema change applied in order at startup
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TEXT NOT NULL DEFAULT (datetime('now'))
			);
			CREATE TABLE IF NOT EXISTS events (
				id TEXT PRIMARY KEY,
				source_timestamp INTEGER NOT NULL,
				source_system TEXT NOT NULL,
				contributor TEXT NOT NULL,
				event_type TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_events_source_system
				ON events (source_system);
			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}

// EventStore persists contribution events to SQLite
type EventStore struct {
	db *sqlx.DB
}

// NewEventStore opens (or creates) the database at dbPath and applies any
// pending schema migrations.
func NewEventStore(dbPath string) (*EventStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to enable WAL mode")
	}

	s := &EventStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database connection
func (s *EventStore) Close() error {
	return s.db.Close()
}

func (s *EventStore) migrate() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return goerr.Wrap(err, "failed to check schema_version table")
	}

	if tableCount > 0 {
		if err := s.db.Get(&currentVersion,
			"SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return goerr.Wrap(err, "failed to read schema version")
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return goerr.Wrap(err, "failed to apply migration", goerr.V("version", m.version))
		}
	}

	return nil
}

// InsertEvent persists one event row inside a transaction. Values are
// bound as parameters; field values never appear in the SQL text.
func (s *EventStore) InsertEvent(ctx context.Context, event *model.Event) error {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction", goerr.T(types.ErrTagPersistence))
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, source_timestamp, source_system, contributor, event_type)
		VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.SourceTimestamp, event.SourceSystem, event.Contributor, event.EventType,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to insert event", goerr.T(types.ErrTagPersistence))
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit event", goerr.T(types.ErrTagPersistence))
	}

	return nil
}
