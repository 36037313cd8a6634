// Package store persists conversation sessions and messages in SQLite.
package store

// #region imports
import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"
)

// #endregion

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Fixed-width UTC timestamps so text ordering matches time ordering.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	summary       TEXT,
	created_at    TEXT NOT NULL,
	last_updated  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	role          TEXT NOT NULL,
	content       TEXT NOT NULL,
	metadata_json TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);
`

// #endregion schema

// summaryTopics are the words Summary looks for in user messages.
var summaryTopics = []string{"salary", "allowance", "leave", "policy", "bonus", "benefit", "farm", "hr", "recruitment", "training"}

// #region store-struct
// Store manages conversation memory in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// #endregion store-struct

// #region constructor
// Open opens a SQLite database at path and runs migrations. Foreign keys
// and WAL are set through the DSN so every pooled connection gets them.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// New runs migrations on an open database. Deletes remove messages
// explicitly, so the store does not depend on the pragma reaching every
// connection of a caller-supplied pool.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region sessions

// StartSession creates an empty session and returns its id.
func (s *Store) StartSession(ctx context.Context) (string, error) {
	id := uuid.New().String()
	now := s.now().Format(tsLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, created_at, last_updated) VALUES (?, ?, ?)`,
		id, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	return id, nil
}

// Exists reports whether a session exists.
func (s *Store) Exists(ctx context.Context, sessionID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("session exists: %w", err)
	}
	return n > 0, nil
}

// ListSessions returns every session, most recently updated first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.session_id, COALESCE(s.summary, ''), s.created_at, s.last_updated,
		       (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.session_id)
		FROM sessions s
		ORDER BY s.last_updated DESC, s.session_id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var created, updated string
		if err := rows.Scan(&info.SessionID, &info.Summary, &created, &updated, &info.MessageCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.CreatedAt = parseTime(created)
		info.LastUpdated = parseTime(updated)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Summary == "" {
			sum, err := s.Summary(ctx, out[i].SessionID)
			if err != nil {
				return nil, err
			}
			out[i].Summary = sum
		}
	}
	return out, nil
}

// ClearSession deletes a session and its messages in one transaction.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// ClearAll deletes every session and message.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return tx.Commit()
}

// #endregion

// #region messages

// AddMessage appends a message and bumps the session's last_updated.
func (s *Store) AddMessage(ctx context.Context, sessionID string, role Role, content string, metadata map[string]string) error {
	var meta any
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		meta = string(b)
	}
	now := s.now().Format(tsLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE sessions SET last_updated = ? WHERE session_id = ?`, now, sessionID)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, metadata_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, string(role), content, meta, now,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return tx.Commit()
}

// History returns the last limit messages of a session in chronological
// order. limit <= 0 returns all of them.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	ok, err := s.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, COALESCE(metadata_json, ''), created_at FROM (
			SELECT id, role, content, metadata_json, created_at FROM messages
			WHERE session_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		var meta, created string
		if err := rows.Scan(&m.Role, &m.Content, &meta, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &m.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata: %w", err)
			}
		}
		m.Timestamp = parseTime(created)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Context formats the last max messages for the generation prompt:
//
//	Previous conversation context:
//	User: ...
//	Assistant: ...
//
// An empty session yields "".
func (s *Store) Context(ctx context.Context, sessionID string, max int) (string, error) {
	msgs, err := s.History(ctx, sessionID, max)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "", nil
	}
	title := cases.Title(language.English)
	var b strings.Builder
	b.WriteString("Previous conversation context:\n")
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s: %s\n", title.String(string(m.Role)), m.Content)
	}
	return b.String(), nil
}

// Summary returns the stored summary, or one derived from message count and
// the topics named in user messages.
func (s *Store) Summary(ctx context.Context, sessionID string) (string, error) {
	var stored sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT summary FROM sessions WHERE session_id = ?`, sessionID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("summary: %w", err)
	}
	if stored.String != "" {
		return stored.String, nil
	}

	msgs, err := s.History(ctx, sessionID, 0)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "No conversation yet.", nil
	}
	var topics []string
	for _, m := range msgs {
		if m.Role != RoleUser {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(m.Content)) {
			w = strings.Trim(w, "?!.,;:'\"")
			if slices.Contains(summaryTopics, w) && !slices.Contains(topics, w) {
				topics = append(topics, w)
			}
		}
	}
	topic := "general inquiry"
	if len(topics) > 0 {
		topic = strings.Join(topics[:min(5, len(topics))], ", ")
	}
	return fmt.Sprintf("Conversation with %d messages about: %s", len(msgs), topic), nil
}

// SetSummary stores an explicit summary for a session.
func (s *Store) SetSummary(ctx context.Context, sessionID, summary string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET summary = ? WHERE session_id = ?`, summary, sessionID)
	if err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// #endregion

// #region export

// Export writes every conversation as indented JSON keyed by session id.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return err
	}
	out := make(map[string]Conversation, len(sessions))
	for _, info := range sessions {
		msgs, err := s.History(ctx, info.SessionID, 0)
		if err != nil {
			return err
		}
		out[info.SessionID] = Conversation{
			SessionID:   info.SessionID,
			Messages:    msgs,
			CreatedAt:   info.CreatedAt,
			LastUpdated: info.LastUpdated,
			Summary:     info.Summary,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Stats counts sessions and messages and reports the database size.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM sessions), (SELECT COUNT(*) FROM messages)`,
	).Scan(&st.TotalConversations, &st.TotalMessages)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	var pages, size int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pages); err == nil {
		if err := s.db.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&size); err == nil {
			st.SizeBytes = pages * size
		}
	}
	return st, nil
}

// #endregion

func parseTime(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}
