package logging

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// #endregion helpers

// #region log-run-tests
func TestLogRun_Success(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	id, err := LogRun(db, RunEntry{
		SessionID:  "s1",
		Variant:    "final",
		Query:      "What is the house allowance for a farm manager?",
		QueryType:  "allowance_inquiry",
		Terminal:   "finalize_response",
		MatchType:  "exact",
		Confidence: 82.5,
		Sources:    2,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated run id")
	}

	runs, err := Recent(db, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != id || got.Confidence != 82.5 || got.Sources != 2 || got.MatchType != "exact" {
		t.Errorf("unexpected run: %+v", got)
	}
	if !got.CreatedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestLogRun_NullsOptionalFields(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	if _, err := LogRun(db, RunEntry{Variant: "basic", Query: "who are you", Terminal: "end_blocked", Blocked: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sessionID, queryType sql.NullString
	db.QueryRow("SELECT session_id, query_type FROM run_log").Scan(&sessionID, &queryType)
	if sessionID.Valid || queryType.Valid {
		t.Error("expected NULL for empty optional fields")
	}

	runs, _ := Recent(db, 1)
	if !runs[0].Blocked {
		t.Error("expected blocked flag to round trip")
	}
}

func TestLogRun_DuplicateID(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	e := RunEntry{RunID: "r1", Variant: "final", Query: "q", Terminal: "error_handling"}
	if _, err := LogRun(db, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LogRun(db, e); err == nil {
		t.Error("expected unique violation")
	}
}

func TestLogRun_NoTable(t *testing.T) {
	db, _ := sql.Open("sqlite", ":memory:")
	defer db.Close()
	if _, err := LogRun(db, RunEntry{Variant: "final", Query: "q", Terminal: "x"}); err == nil {
		t.Error("expected error without run_log table")
	}
}

// #endregion log-run-tests

// #region recent-tests
func TestRecent_NewestFirstAndLimit(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	for _, term := range []string{"finalize_response", "end_blocked", "error_handling"} {
		if _, err := LogRun(db, RunEntry{Variant: "final", Query: term, Terminal: term}); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := Recent(db, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Terminal != "error_handling" || runs[1].Terminal != "end_blocked" {
		t.Errorf("unexpected order: %+v", runs)
	}

	counts, err := TerminalCounts(db)
	if err != nil {
		t.Fatal(err)
	}
	if counts["finalize_response"] != 1 || len(counts) != 3 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

// #endregion recent-tests
