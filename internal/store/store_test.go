package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #region helpers
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s, err := New(db)
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

// #endregion helpers

func TestStartSessionAndMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.StartSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, s.AddMessage(ctx, id, RoleUser, "What is the sick leave policy?", nil))
	require.NoError(t, s.AddMessage(ctx, id, RoleAssistant, "Fourteen days per year.", map[string]string{"terminal": "finalize_response"}))

	msgs, err := s.History(ctx, id, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "finalize_response", msgs[1].Metadata["terminal"])
	assert.True(t, msgs[1].Timestamp.After(msgs[0].Timestamp))
}

func TestAddMessageUnknownSession(t *testing.T) {
	s := newTestStore(t)
	err := s.AddMessage(context.Background(), "nope", RoleUser, "hi", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryLimitKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id, _ := s.StartSession(ctx)
	for _, c := range []string{"one", "two", "three", "four"} {
		require.NoError(t, s.AddMessage(ctx, id, RoleUser, c, nil))
	}

	msgs, err := s.History(ctx, id, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "three", msgs[0].Content)
	assert.Equal(t, "four", msgs[1].Content)
}

func TestContextFormat(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id, _ := s.StartSession(ctx)

	got, err := s.Context(ctx, id, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.AddMessage(ctx, id, RoleUser, "hello", nil))
	require.NoError(t, s.AddMessage(ctx, id, RoleAssistant, "hi there", nil))

	got, err = s.Context(ctx, id, 10)
	require.NoError(t, err)
	assert.Equal(t, "Previous conversation context:\nUser: hello\nAssistant: hi there\n", got)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id, _ := s.StartSession(ctx)

	sum, err := s.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "No conversation yet.", sum)

	require.NoError(t, s.AddMessage(ctx, id, RoleUser, "What is the salary of a driver?", nil))
	require.NoError(t, s.AddMessage(ctx, id, RoleAssistant, "The leave policy says...", nil))
	require.NoError(t, s.AddMessage(ctx, id, RoleUser, "And the house allowance?", nil))

	sum, err = s.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Conversation with 3 messages about: salary, allowance", sum)

	require.NoError(t, s.SetSummary(ctx, id, "pay questions"))
	sum, _ = s.Summary(ctx, id)
	assert.Equal(t, "pay questions", sum)

	_, err = s.Summary(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSessionsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.StartSession(ctx)
	b, _ := s.StartSession(ctx)
	require.NoError(t, s.AddMessage(ctx, a, RoleUser, "bump", nil))

	list, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].SessionID)
	assert.Equal(t, 1, list[0].MessageCount)
	assert.Equal(t, b, list[1].SessionID)
	assert.Equal(t, "No conversation yet.", list[1].Summary)
}

func TestClearSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id, _ := s.StartSession(ctx)
	require.NoError(t, s.AddMessage(ctx, id, RoleUser, "hi", nil))

	require.NoError(t, s.ClearSession(ctx, id))
	_, err := s.History(ctx, id, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.ClearSession(ctx, id), ErrNotFound)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalMessages, "messages cascade with their session")
}

func TestExportAndStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id, _ := s.StartSession(ctx)
	require.NoError(t, s.AddMessage(ctx, id, RoleUser, "leave?", nil))
	_, _ = s.StartSession(ctx)

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf))

	var got map[string]Conversation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "leave?", got[id].Messages[0].Content)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalConversations)
	assert.Equal(t, 1, st.TotalMessages)
	assert.Positive(t, st.SizeBytes)

	require.NoError(t, s.ClearAll(ctx))
	st, _ = s.Stats(ctx)
	assert.Equal(t, 0, st.TotalConversations)
}

func TestOpenFile(t *testing.T) {
	s, err := Open(t.TempDir() + "/memory.db")
	require.NoError(t, err)
	defer s.Close()
	_, err = s.StartSession(context.Background())
	assert.NoError(t, err)
}

func TestClearSessionRemovesMessagesOnAnyConnection(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/memory.db"

	tests := []struct {
		name string
		open func(t *testing.T) *Store
	}{
		{"open", func(t *testing.T) *Store {
			s, err := Open(path + ".open")
			require.NoError(t, err)
			return s
		}},
		{"caller pool without pragmas", func(t *testing.T) *Store {
			db, err := sql.Open("sqlite", path+".raw")
			require.NoError(t, err)
			s, err := New(db)
			require.NoError(t, err)
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.open(t)
			defer s.Close()

			id, err := s.StartSession(ctx)
			require.NoError(t, err)
			require.NoError(t, s.AddMessage(ctx, id, RoleUser, "sick leave?", nil))

			// Pin one connection so the delete runs on another.
			held, err := s.DB().Conn(ctx)
			require.NoError(t, err)
			defer held.Close()

			require.NoError(t, s.ClearSession(ctx, id))

			var orphans int
			require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&orphans))
			assert.Zero(t, orphans)

			st, err := s.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, st.TotalConversations)
			assert.Equal(t, 0, st.TotalMessages)
		})
	}
}
