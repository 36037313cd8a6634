package assistant

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kazifarms/hr-assistant/internal/classifier"
	"github.com/kazifarms/hr-assistant/internal/logger"
	"github.com/kazifarms/hr-assistant/internal/logging"
	"github.com/kazifarms/hr-assistant/internal/pipeline"
	"github.com/kazifarms/hr-assistant/internal/store"
)

type fakeProcessor struct {
	contexts []string
}

func (f *fakeProcessor) ProcessWithContext(_ context.Context, query, convo string) pipeline.Result {
	f.contexts = append(f.contexts, convo)
	return pipeline.Result{
		FinalResponse:   "answer to " + query,
		ConfidenceScore: 64,
		Terminal:        pipeline.NodeFinalize,
		QueryAnalysis:   &classifier.QueryAnalysis{QueryType: classifier.TypeLeave},
	}
}

func (f *fakeProcessor) Variant() pipeline.Variant { return pipeline.VariantFinal }

func newTestService(t *testing.T) (*Service, *fakeProcessor, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	mem, err := store.New(db)
	require.NoError(t, err)
	require.NoError(t, logging.Migrate(db))

	p := &fakeProcessor{}
	return New(p, mem, db, 4, nil), p, db
}

func TestAskStartsSessionAndRemembers(t *testing.T) {
	ctx := context.Background()
	s, p, db := newTestService(t)

	first, err := s.Ask(ctx, "", "How many sick leave days?")
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)
	assert.NotEmpty(t, first.RunID)
	assert.Equal(t, "", p.contexts[0])

	second, err := s.Ask(ctx, first.SessionID, "And casual leave?")
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t,
		"Previous conversation context:\nUser: How many sick leave days?\nAssistant: answer to How many sick leave days?\n",
		p.contexts[1])

	msgs, err := s.Memory().History(ctx, first.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "leave_inquiry", msgs[1].Metadata["query_type"])

	runs, err := logging.Recent(db, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "final", runs[0].Variant)
	assert.Equal(t, "leave_inquiry", runs[0].QueryType)
}

func TestAskUnknownSession(t *testing.T) {
	s, _, _ := newTestService(t)
	_, err := s.Ask(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAskEmptyQuery(t *testing.T) {
	s, _, _ := newTestService(t)
	_, err := s.Ask(context.Background(), "", "   ")
	assert.Error(t, err)
}

func TestAskWithoutMemory(t *testing.T) {
	p := &fakeProcessor{}
	s := New(p, nil, nil, 0, nil)
	ans, err := s.Ask(context.Background(), "", "leave?")
	require.NoError(t, err)
	assert.Empty(t, ans.SessionID)
	assert.Empty(t, ans.RunID)
	assert.Equal(t, "answer to leave?", ans.FinalResponse)
}

func TestAskLogsThroughRequestLogger(t *testing.T) {
	runs, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { runs.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core).With(zap.String("request_id", "req-7")))

	s := New(&fakeProcessor{}, nil, runs, 0, nil)
	ans, err := s.Ask(ctx, "", "leave?")
	require.NoError(t, err)
	assert.Empty(t, ans.RunID)

	failed := logs.FilterMessage("run log write failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "assistant", failed[0].LoggerName)
	assert.Equal(t, "req-7", failed[0].ContextMap()["request_id"])
}
