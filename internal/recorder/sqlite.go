package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder appends fetch events to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

var _ OutcomeCounter = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
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

	logrus.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshot_fetches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			request_id  TEXT NOT NULL,
			source      TEXT,
			page_limit  INTEGER,
			item_count  INTEGER,
			outcome     TEXT,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_ts ON snapshot_fetches(timestamp)`,

		`CREATE TABLE IF NOT EXISTS history_loads (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			request_id   TEXT NOT NULL,
			currency_id  TEXT NOT NULL,
			days         INTEGER,
			sample_count INTEGER,
			outcome      TEXT,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON history_loads(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_history_currency ON history_loads(currency_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(evt *SnapshotEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO snapshot_fetches
		(timestamp, request_id, source, page_limit, item_count, outcome, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.Source, evt.Limit, evt.Count, evt.Outcome, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordHistory(evt *HistoryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO history_loads
		(timestamp, request_id, currency_id, days, sample_count, outcome, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.CurrencyID, evt.Days, evt.Samples, evt.Outcome, evt.Error,
	)
	return err
}

// CountOutcomes returns how many history loads ended with each outcome.
// The console's stats command reads it.
func (r *SQLiteRecorder) CountOutcomes() (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT outcome, COUNT(*) FROM history_loads GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	logrus.Info("closing sqlite recorder")
	return r.db.Close()
}
