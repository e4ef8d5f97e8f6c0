// Package ledger keeps a local history of monthly spend snapshots.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/costguard/costguard/pkg/models"
)

// Ledger records and queries spend snapshots in a SQLite database.
type Ledger struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS spend_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	period TEXT NOT NULL,
	captured_at DATETIME NOT NULL,
	total_usd REAL NOT NULL,
	event_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_period ON spend_snapshots(period, captured_at);
`

// New opens the ledger database and runs auto-migration.
func New(dbPath string) (*Ledger, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger db: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Record stores one spend snapshot.
func (l *Ledger) Record(ctx context.Context, snap models.Snapshot) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO spend_snapshots (period, captured_at, total_usd, event_count) VALUES (?, ?, ?, ?)`,
		snap.Period, snap.CapturedAt.UTC(), snap.TotalUSD, snap.EventCount)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	return nil
}

// ByPeriod returns all snapshots for one billing period, oldest first.
func (l *Ledger) ByPeriod(ctx context.Context, period string) ([]models.Snapshot, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, period, captured_at, total_usd, event_count
		 FROM spend_snapshots WHERE period = ? ORDER BY captured_at ASC`, period)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// Latest returns the n most recent snapshots, newest first.
func (l *Ledger) Latest(ctx context.Context, n int) ([]models.Snapshot, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, period, captured_at, total_usd, event_count
		 FROM spend_snapshots ORDER BY captured_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func scanSnapshots(rows *sql.Rows) ([]models.Snapshot, error) {
	var snaps []models.Snapshot
	for rows.Next() {
		var s models.Snapshot
		if err := rows.Scan(&s.ID, &s.Period, &s.CapturedAt, &s.TotalUSD, &s.EventCount); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
