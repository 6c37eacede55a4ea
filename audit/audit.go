// Package audit records a best-effort operational history of game
// lifecycle transitions into an embedded SQLite database. It is never a
// source of truth for game state (spec §1 Non-goals, spec_full.md A10):
// nothing here is replayed back into a running simulation.GameRepository.
package audit

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hashicorp/go-multierror"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dgrantpete/scoreboard-sim/logging"
	"github.com/dgrantpete/scoreboard-sim/simulation"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// bufferSize bounds how many pending events Logger will queue; once it is
// full, Record drops each new event, so a stalled database write can never
// grow memory without bound.
const bufferSize = 1024

type event struct {
	kind   simulation.LifecycleEvent
	gameID string
	detail string
	at     time.Time
}

// Logger writes lifecycle events to SQLite from a single background
// goroutine, so callers (simulation.GameRepository) never block on disk
// I/O (spec §5's "no I/O while the writer lock is held" — Record is
// called outside any lock anyway, but this keeps it cheap regardless).
type Logger struct {
	db     *sql.DB
	events chan event
	done   chan struct{}
	log    *logging.Logger
}

// Open migrates the SQLite database at path to the latest schema and
// starts the background writer goroutine.
func Open(path string) (*Logger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open sqlite: %w", err)
	}

	if err := migrate_(db); err != nil {
		db.Close()
		return nil, err
	}

	l := &Logger{
		db:     db,
		events: make(chan event, bufferSize),
		done:   make(chan struct{}),
		log:    logging.Default().WithPrefix("audit"),
	}
	go l.run()
	return l, nil
}

func migrate_(db *sql.DB) error {
	var result *multierror.Error

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("audit: load embedded migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		result = multierror.Append(result, err)
		return result.ErrorOrNil()
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		result = multierror.Append(result, err)
		return result.ErrorOrNil()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (l *Logger) run() {
	defer close(l.done)
	for e := range l.events {
		_, err := l.db.Exec(
			`INSERT INTO audit_events (event, game_id, detail, at) VALUES (?, ?, ?, ?)`,
			string(e.kind), e.gameID, e.detail, e.at,
		)
		if err != nil {
			l.log.Warnf("failed to record audit event %s for %s: %v", e.kind, e.gameID, err)
		}
	}
}

// Record enqueues a lifecycle event for background persistence. It
// satisfies simulation.AuditSink. If the buffer is full the event is
// dropped and logged at WARN rather than blocking the caller.
func (l *Logger) Record(kind simulation.LifecycleEvent, gameID string, detail string) {
	select {
	case l.events <- event{kind: kind, gameID: gameID, detail: detail, at: time.Now().UTC()}:
	default:
		l.log.Warnf("audit buffer full, dropping event %s for %s", kind, gameID)
	}
}

// Close stops accepting new events and waits for the writer goroutine to
// drain the buffer, then closes the database.
func (l *Logger) Close() error {
	close(l.events)
	<-l.done
	return l.db.Close()
}
