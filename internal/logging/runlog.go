// Package logging keeps an append-only SQLite record of pipeline runs.
package logging

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS run_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL UNIQUE,
	session_id    TEXT,
	variant       TEXT NOT NULL,
	query         TEXT NOT NULL,
	query_type    TEXT,
	terminal      TEXT NOT NULL,
	match_type    TEXT,
	fallback      TEXT,
	confidence    REAL NOT NULL,
	sources       INTEGER NOT NULL DEFAULT 0,
	blocked       INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL
);
`

// Migrate creates the run_log table.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate run_log: %w", err)
	}
	return nil
}

// #endregion schema

// #region log-run
// LogRun writes a run entry, assigning a run id and timestamp when unset.
// Returns the run id.
func LogRun(db *sql.DB, entry RunEntry) (string, error) {
	if entry.RunID == "" {
		entry.RunID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	blocked := 0
	if entry.Blocked {
		blocked = 1
	}

	_, err := db.Exec(
		`INSERT INTO run_log (run_id, session_id, variant, query, query_type, terminal, match_type,
		  fallback, confidence, sources, blocked, error_message, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		nullIfEmpty(entry.SessionID),
		entry.Variant,
		entry.Query,
		nullIfEmpty(entry.QueryType),
		entry.Terminal,
		nullIfEmpty(entry.MatchType),
		nullIfEmpty(entry.Fallback),
		entry.Confidence,
		entry.Sources,
		blocked,
		nullIfEmpty(entry.ErrorMessage),
		entry.DurationMS,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("log run: %w", err)
	}
	return entry.RunID, nil
}

// #endregion log-run

// #region recent
// Recent returns the last n runs, newest first.
func Recent(db *sql.DB, n int) ([]RunEntry, error) {
	rows, err := db.Query(`
		SELECT run_id, COALESCE(session_id, ''), variant, query, COALESCE(query_type, ''), terminal,
		       COALESCE(match_type, ''), COALESCE(fallback, ''), confidence, sources, blocked,
		       COALESCE(error_message, ''), duration_ms, created_at
		FROM run_log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunEntry
	for rows.Next() {
		var e RunEntry
		var blocked int
		var created string
		if err := rows.Scan(&e.RunID, &e.SessionID, &e.Variant, &e.Query, &e.QueryType, &e.Terminal,
			&e.MatchType, &e.Fallback, &e.Confidence, &e.Sources, &blocked,
			&e.ErrorMessage, &e.DurationMS, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.Blocked = blocked == 1
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// TerminalCounts returns how many runs ended at each terminal node.
func TerminalCounts(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT terminal, COUNT(*) FROM run_log GROUP BY terminal`)
	if err != nil {
		return nil, fmt.Errorf("terminal counts: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var term string
		var n int
		if err := rows.Scan(&term, &n); err != nil {
			return nil, err
		}
		out[term] = n
	}
	return out, rows.Err()
}

// #endregion recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
