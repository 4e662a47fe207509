package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ywen250/finsim-backend/internal/engine"
)

// SQLiteRecorder persists committed events and per-day ledger snapshots to
// a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations. WAL mode keeps readers out of the writer's way.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at     INTEGER NOT NULL,
			session_id      TEXT NOT NULL,
			event_id        TEXT NOT NULL,
			day             INTEGER NOT NULL,
			scenario_id     TEXT,
			name            TEXT,
			category        TEXT,
			deterministic   INTEGER,
			proposed_amount REAL,
			amount          REAL,
			chosen_option   TEXT,
			probability     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, day)`,

		`CREATE TABLE IF NOT EXISTS day_ledgers (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at     INTEGER NOT NULL,
			session_id      TEXT NOT NULL,
			day             INTEGER NOT NULL,
			checking        REAL,
			savings         REAL,
			investments     REAL,
			health          REAL,
			day_net         REAL,
			positive_streak INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledgers_session ON day_ledgers(session_id, day)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordCommit writes one committed day: every event plus the ledger state
// after close-of-day, in a single transaction.
func (r *SQLiteRecorder) RecordCommit(sessionID string, day int, events []*engine.CommittedEvent, ledger engine.Ledger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range events {
		_, err := tx.Exec(`INSERT INTO events
			(recorded_at, session_id, event_id, day, scenario_id, name, category,
			 deterministic, proposed_amount, amount, chosen_option, probability)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			now, sessionID, ev.ID, ev.Day, ev.ScenarioID, ev.Name, string(ev.Category),
			boolToInt(ev.Deterministic), ev.ProposedAmount, ev.Amount, ev.ChosenOption, ev.Probability)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	_, err = tx.Exec(`INSERT INTO day_ledgers
		(recorded_at, session_id, day, checking, savings, investments, health, day_net, positive_streak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		now, sessionID, day, ledger.Checking, ledger.Savings, ledger.Investments,
		ledger.Health, ledger.LastDayNet, ledger.PositiveStreak)
	if err != nil {
		return fmt.Errorf("insert ledger: %w", err)
	}

	return tx.Commit()
}

// Close flushes and closes the database.
func (r *SQLiteRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
