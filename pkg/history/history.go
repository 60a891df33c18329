// Package history records completed analysis runs in a dedicated SQLite
// database so past recommendations can be reviewed later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huddleai/huddle/pkg/models"
	_ "modernc.org/sqlite"
)

// Log writes and queries analysis history entries.
type Log struct {
	db *sql.DB
}

// New opens the history SQLite database and creates the schema.
func New(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &Log{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS analysis_history (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		league_id       TEXT NOT NULL,
		league_name     TEXT,
		week            INTEGER NOT NULL,
		provider        TEXT NOT NULL,
		strategies      INTEGER NOT NULL,
		best_strategy   TEXT,
		best_confidence INTEGER,
		duration_ms     INTEGER NOT NULL,
		created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_history_league ON analysis_history(league_id)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_history_created ON analysis_history(created_at)`)
	return err
}

// Record inserts a history entry. A nil Log is safe and records nothing,
// so callers need not guard the history being disabled.
func (l *Log) Record(ctx context.Context, entry models.HistoryEntry) error {
	if l == nil || l.db == nil {
		return nil
	}

	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO analysis_history
		(league_id, league_name, week, provider, strategies,
		 best_strategy, best_confidence, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.LeagueID, entry.LeagueName, entry.Week, entry.Provider,
		entry.Strategies, entry.BestStrategy, entry.BestConfidence,
		entry.DurationMs, created,
	)
	return err
}

// Recent returns the most recent entries, newest first. A non-positive
// limit defaults to 20.
func (l *Log) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, league_id, league_name, week, provider, strategies,
			best_strategy, best_confidence, duration_ms, created_at
		FROM analysis_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var leagueName, bestStrategy sql.NullString
		var bestConfidence sql.NullInt64
		if err := rows.Scan(
			&e.ID, &e.LeagueID, &leagueName, &e.Week, &e.Provider,
			&e.Strategies, &bestStrategy, &bestConfidence,
			&e.DurationMs, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.LeagueName = leagueName.String
		e.BestStrategy = bestStrategy.String
		e.BestConfidence = int(bestConfidence.Int64)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ForLeague returns entries for one league, newest first.
func (l *Log) ForLeague(ctx context.Context, leagueID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, league_id, league_name, week, provider, strategies,
			best_strategy, best_confidence, duration_ms, created_at
		FROM analysis_history WHERE league_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, leagueID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var leagueName, bestStrategy sql.NullString
		var bestConfidence sql.NullInt64
		if err := rows.Scan(
			&e.ID, &e.LeagueID, &leagueName, &e.Week, &e.Provider,
			&e.Strategies, &bestStrategy, &bestConfidence,
			&e.DurationMs, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.LeagueName = leagueName.String
		e.BestStrategy = bestStrategy.String
		e.BestConfidence = int(bestConfidence.Int64)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}
