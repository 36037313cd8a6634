package valkey

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, float32(i)}
	}
	return out, nil
}

func newTestIndex(t *testing.T, emb Embedder) (*Index, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	return NewWithClient(c, Config{Dimensions: 4}, emb, nil), c
}

func TestScoredSearch(t *testing.T) {
	x, c := newTestIndex(t, &fakeEmbedder{})

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[1] == "hr:idx" &&
				cmd[2] == "*=>[KNN 3 @vector $BLOB]" &&
				strings.Contains(strings.Join(cmd, " "), "DIALECT 2")
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("hr:doc:a"),
			mock.RedisArray(
				mock.RedisString("text"), mock.RedisString("Sick leave is 14 days."),
				mock.RedisString("source"), mock.RedisString("Leave_Policy.pdf"),
				mock.RedisString("__vector_score"), mock.RedisString("0.25"),
			),
			mock.RedisString("hr:doc:b"),
			mock.RedisArray(
				mock.RedisString("text"), mock.RedisString("Casual leave is 10 days."),
				mock.RedisString("metadata"), mock.RedisString(`{"page":"3"}`),
			),
		)))

	got, err := x.ScoredSearch(context.Background(), "sick leave", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].Passage.ID)
	assert.Equal(t, "Leave_Policy.pdf", got[0].Passage.Source())
	require.NotNil(t, got[0].Distance)
	assert.InDelta(t, 0.25, *got[0].Distance, 1e-9)

	assert.Equal(t, "3", got[1].Passage.Metadata["page"])
	assert.Nil(t, got[1].Distance)
}

func TestScoredSearchEmbedFailure(t *testing.T) {
	x, _ := newTestIndex(t, &fakeEmbedder{err: errors.New("quota")})
	_, err := x.ScoredSearch(context.Background(), "q", 3)
	assert.ErrorContains(t, err, "quota")
}

func TestScoredSearchNoEmbedder(t *testing.T) {
	x, _ := newTestIndex(t, nil)
	_, err := x.ScoredSearch(context.Background(), "q", 3)
	assert.ErrorIs(t, err, ErrNoEmbedder)
}

func TestTextSearchEscapesQuery(t *testing.T) {
	x, c := newTestIndex(t, nil)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[2] == "@text:(house|allowance|farm|manager)"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	got, err := x.Search(context.Background(), "house-allowance (farm manager)?", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"allowance => manager", []string{"allowance", "manager"}},
		{"salary < 50000 or > 20000", []string{"salary", "50000", "or", "20000"}},
		{"grade^2 + bonus = total", []string{"grade", "2", "bonus", "total"}},
		{"leave/holiday #policy & `rules`", []string{"leave", "holiday", "policy", "rules"}},
		{`@text:{x}|"y"*`, []string{"text", "x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.Fields(escapeQuery(tt.in)))
		})
	}
}

func TestTextSearchOperatorCharacters(t *testing.T) {
	x, c := newTestIndex(t, nil)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[2] == "@text:(allowance|manager)"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	_, err := x.Search(context.Background(), "allowance => manager", 5)
	require.NoError(t, err)
}

func TestTextSearchBlankQuery(t *testing.T) {
	x, _ := newTestIndex(t, nil)
	got, err := x.Search(context.Background(), " ?! ", 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTextSearchError(t *testing.T) {
	x, c := newTestIndex(t, nil)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	_, err := x.Search(context.Background(), "leave", 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEnsureIndex(t *testing.T) {
	x, c := newTestIndex(t, nil)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			joined := strings.Join(cmd, " ")
			return cmd[0] == "FT.CREATE" && cmd[1] == "hr:idx" &&
				strings.Contains(joined, "PREFIX 1 hr:doc:") &&
				strings.Contains(joined, "DIM 4") &&
				strings.Contains(joined, "DISTANCE_METRIC COSINE")
		})).
		Return(mock.Result(mock.RedisString("OK")))
	require.NoError(t, x.EnsureIndex(context.Background()))
}

func TestEnsureIndexExists(t *testing.T) {
	x, c := newTestIndex(t, nil)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.CREATE" })).
		Return(mock.Result(mock.RedisError("Index already exists")))
	assert.NoError(t, x.EnsureIndex(context.Background()))
}

func TestPut(t *testing.T) {
	emb := &fakeEmbedder{}
	x, c := newTestIndex(t, emb)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "hr:doc:p1"
		})).
		Return(mock.Result(mock.RedisInt64(4)))
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && strings.HasPrefix(cmd[1], "hr:doc:") && cmd[1] != "hr:doc:p1"
		})).
		Return(mock.Result(mock.RedisInt64(4)))

	n, err := x.Put(context.Background(), []retrieval.Passage{
		{ID: "p1", Text: "Sick leave is 14 days.", Metadata: map[string]string{"source": "Leave_Policy.pdf"}},
		{Text: "Night allowance applies after 10 PM."},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, emb.calls, "one batched embedding call")
}

func TestPutStopsOnError(t *testing.T) {
	x, c := newTestIndex(t, &fakeEmbedder{})
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "HSET" })).
		Return(mock.ErrorResult(errors.New("OOM")))

	n, err := x.Put(context.Background(), []retrieval.Passage{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}})
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestPing(t *testing.T) {
	x, c := newTestIndex(t, nil)
	c.EXPECT().Do(gomock.Any(), mock.Match("PING")).Return(mock.Result(mock.RedisString("PONG")))
	assert.NoError(t, x.Ping(context.Background()))
}

func TestVectorToBytes(t *testing.T) {
	b := vectorToBytes([]float32{1})
	assert.Equal(t, "\x00\x00\x80\x3f", b)
}
