package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kazifarms/hr-assistant/internal/classifier"
	"github.com/kazifarms/hr-assistant/internal/fallback"
	"github.com/kazifarms/hr-assistant/internal/guard"
	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/logger"
	"github.com/kazifarms/hr-assistant/internal/matcher"
	"github.com/kazifarms/hr-assistant/internal/random"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
	"github.com/kazifarms/hr-assistant/internal/similarity"
)

// #region fakes
type fakeRetriever struct {
	hits  []retrieval.Hit
	err   error
	calls atomic.Int32
}

func (f *fakeRetriever) Search(_ context.Context, _ string, _ int, _ float64) ([]retrieval.Hit, error) {
	f.calls.Add(1)
	return f.hits, f.err
}

type fakeCompleter struct {
	text    string
	err     error
	panics  bool
	calls   atomic.Int32
	prompts sync.Map
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	n := f.calls.Add(1)
	f.prompts.Store(n, prompt)
	if f.panics {
		panic("model exploded")
	}
	return f.text, f.err
}

type failingComparer struct{}

func (failingComparer) Compare(context.Context, string, string) (similarity.Metrics, error) {
	return similarity.Metrics{}, errors.New("embedding backend down")
}

// #endregion

// #region helpers
const (
	houseQuery  = "What is the house allowance for a farm manager?"
	houseAnswer = "The house allowance for a Farm Manager is 40% of basic salary at all farm locations."
)

var housePassage = retrieval.Passage{
	ID:   "doc-1",
	Text: "House Allowance for Farm Manager: 40% of basic salary at all farm locations.",
}

func newTestPipeline(t *testing.T, v Variant, r Retriever, c Completer, comp Comparer, rng random.Source) (*Pipeline, *lexicon.Lexicon) {
	t.Helper()
	lex := lexicon.Default()
	g, err := guard.NewGuard(lex, rng)
	require.NoError(t, err)
	m, err := matcher.NewMatcher(lex, nil)
	require.NoError(t, err)
	p, err := New(Deps{
		Guard:      g,
		Classifier: classifier.NewClassifier(lex, nil),
		Retriever:  r,
		Matcher:    m,
		Fallback:   fallback.NewPolicy(lex, rng, nil),
		Completer:  c,
		Comparer:   comp,
	}, Options{Variant: v, TopK: 5, Threshold: 25})
	require.NoError(t, err)
	return p, lex
}

// #endregion

func TestGuardBlocksBeforeRetrieval(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 90}}}
	c := &fakeCompleter{text: houseAnswer}
	p, lex := newTestPipeline(t, VariantFinal, r, c, nil, random.Zero)

	res := p.Process(context.Background(), "Who are you?")

	assert.Equal(t, int32(0), r.calls.Load(), "guard must pre-empt retrieval")
	assert.Equal(t, int32(0), c.calls.Load())
	assert.True(t, res.Blocked)
	assert.Equal(t, NodeBlocked, res.Terminal)
	assert.Equal(t, 0.0, res.ConfidenceScore)
	assert.Empty(t, res.SourceDocuments)
	assert.True(t, strings.HasPrefix(res.FinalResponse, lex.Guard.BlockedResponses[0]))
	assert.Equal(t, []Node{NodeAnalyze, NodeBlocked}, res.Path)
}

func TestGreetingBlocked(t *testing.T) {
	r := &fakeRetriever{}
	p, lex := newTestPipeline(t, VariantBasic, r, &fakeCompleter{}, nil, random.Zero)

	res := p.Process(context.Background(), "Hi, how are you doing?")
	assert.True(t, res.Blocked)
	assert.Equal(t, lex.Guard.GreetingResponses[0], res.FinalResponse)
	assert.Equal(t, int32(0), r.calls.Load())
}

func TestHouseAllowanceAnswered(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	c := &fakeCompleter{text: houseAnswer}
	p, _ := newTestPipeline(t, VariantFinal, r, c, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)

	assert.Equal(t, NodeFinalize, res.Terminal)
	assert.Equal(t, matcher.MatchExact, res.MatchType)
	assert.Equal(t, houseAnswer, res.FinalResponse, "strong evidence gets no encouragement")
	assert.Equal(t, 80.0, res.ConfidenceScore)
	assert.Equal(t, []retrieval.Passage{housePassage}, res.SourceDocuments)
	require.NotNil(t, res.QueryAnalysis)
	assert.Equal(t, classifier.TypeAllowance, res.QueryAnalysis.QueryType)
	assert.Equal(t, int32(1), c.calls.Load())

	want := []Node{NodeAnalyze, NodeSearch, NodeMatch, NodeGenerate, NodeValidate, NodeFinalize, NodeReport}
	if diff := cmp.Diff(want, res.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}

	prompt, ok := c.prompts.Load(int32(1))
	require.True(t, ok)
	assert.Contains(t, prompt, housePassage.Text)
	assert.Contains(t, prompt, houseQuery)
}

func TestIrrelevantQueryWithoutHits(t *testing.T) {
	c := &fakeCompleter{text: "Paris"}
	p, lex := newTestPipeline(t, VariantFinal, &fakeRetriever{}, c, nil, random.Zero)

	res := p.Process(context.Background(), "What is the capital of France?")

	assert.Equal(t, lex.Fallback.Pools[lexicon.PoolIrrelevant][0], res.FinalResponse)
	assert.Equal(t, fallback.Irrelevant, res.FallbackCategory)
	assert.Equal(t, NodeFinalize, res.Terminal)
	assert.Equal(t, 0.0, res.ConfidenceScore)
	assert.Equal(t, int32(0), c.calls.Load(), "no hits means no model call")
}

func TestNoHitsDomainQueryGetsEncouragedFallback(t *testing.T) {
	p, lex := newTestPipeline(t, VariantFinal, &fakeRetriever{}, &fakeCompleter{}, nil, random.Zero)

	res := p.Process(context.Background(), "What is the night shift salary for drivers?")

	assert.Equal(t, fallback.NoContext, res.FallbackCategory)
	assert.True(t, strings.HasPrefix(res.FinalResponse, lex.Fallback.Pools[lexicon.PoolNoContext][0]))
	assert.Contains(t, res.FinalResponse, "Salary structures for Management Trainees")
	assert.True(t, strings.HasSuffix(res.FinalResponse, "\n\n"+lex.Fallback.Encouragements[0]))
}

func TestRetrievalFailureRoutesToError(t *testing.T) {
	r := &fakeRetriever{err: errors.New("connection refused")}
	p, _ := newTestPipeline(t, VariantFinal, r, &fakeCompleter{text: houseAnswer}, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)

	assert.Equal(t, NodeError, res.Terminal)
	assert.Equal(t, 0.0, res.ConfidenceScore)
	assert.Empty(t, res.SourceDocuments)
	assert.Contains(t, res.FinalResponse, "Vector search failed")
	assert.NotContains(t, res.FinalResponse, "connection refused", "internals stay out of the answer")
	assert.Contains(t, res.ErrorMessage, "connection refused")
	assert.Equal(t, []Node{NodeAnalyze, NodeSearch, NodeError}, res.Path)
}

func TestMissingRetrieverFailsSearch(t *testing.T) {
	p, _ := newTestPipeline(t, VariantBasic, nil, &fakeCompleter{}, nil, random.Zero)
	res := p.Process(context.Background(), houseQuery)
	assert.Equal(t, NodeError, res.Terminal)
	assert.Contains(t, res.ErrorMessage, retrieval.ErrNoIndex.Error())
}

func TestValidationRejectsGenericAnswer(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	c := &fakeCompleter{text: "I don't know."}
	p, _ := newTestPipeline(t, VariantBasic, r, c, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)

	assert.Equal(t, NodeInvalid, res.Terminal)
	assert.Equal(t, invalidResponse, res.FinalResponse)
	assert.Equal(t, 0.0, res.ConfidenceScore)
	assert.Empty(t, res.SourceDocuments)
}

func TestGenericAnswerReplacedByFallback(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	c := &fakeCompleter{text: "I don't know the exact allowance for that role."}
	p, lex := newTestPipeline(t, VariantFinal, r, c, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)

	assert.Equal(t, NodeFinalize, res.Terminal)
	assert.Equal(t, fallback.GeneralHelp, res.FallbackCategory)
	assert.True(t, strings.HasPrefix(res.FinalResponse, lex.Fallback.Pools[lexicon.PoolGeneralHelp][0]))
	assert.Contains(t, res.FinalResponse, "House allowance for different locations")
}

func TestUnreliableMatchSkipsModel(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: retrieval.Passage{Text: "Paris is the capital of France."}, Confidence: 70}}}
	c := &fakeCompleter{text: "Paris."}
	p, _ := newTestPipeline(t, VariantFinal, r, c, nil, random.Zero)

	res := p.Process(context.Background(), "What is the capital of France?")

	assert.Equal(t, int32(0), c.calls.Load())
	assert.NotEmpty(t, res.FallbackCategory)
	assert.Equal(t, NodeFinalize, res.Terminal)
}

func TestGenerationErrorRecovered(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	c := &fakeCompleter{err: errors.New("rate limited")}
	p, lex := newTestPipeline(t, VariantBasic, r, c, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)

	assert.Equal(t, NodeFinalize, res.Terminal)
	assert.Equal(t, fallback.GeneralHelp, res.FallbackCategory)
	assert.True(t, strings.HasPrefix(res.FinalResponse, lex.Fallback.Pools[lexicon.PoolGeneralHelp][0]))
	assert.Empty(t, res.SourceDocuments)
}

func TestNodePanicBecomesErrorTerminal(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	p, _ := newTestPipeline(t, VariantFinal, r, &fakeCompleter{panics: true}, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)

	assert.Equal(t, NodeError, res.Terminal)
	assert.Contains(t, res.FinalResponse, "Response generation failed")
	assert.Contains(t, res.ErrorMessage, "model exploded")
}

type failingFinalizer struct {
	err   error
	panic bool
}

func (f failingFinalizer) Finalize(st *State) error {
	st.FinalResponse = "half-written answer"
	if f.panic {
		panic("finalizer exploded")
	}
	return f.err
}

func TestFinalizeFailureRoutesToError(t *testing.T) {
	tests := []struct {
		name    string
		fin     failingFinalizer
		wantMsg string
	}{
		{"error", failingFinalizer{err: errors.New("template missing")}, "template missing"},
		{"panic", failingFinalizer{panic: true}, "finalizer exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
			p, _ := newTestPipeline(t, VariantFinal, r, &fakeCompleter{text: houseAnswer}, nil, random.Zero)
			p.finalizer = tt.fin

			res := p.Process(context.Background(), houseQuery)

			assert.Equal(t, NodeError, res.Terminal)
			assert.Equal(t, []Node{NodeAnalyze, NodeSearch, NodeMatch, NodeGenerate, NodeValidate, NodeFinalize, NodeError}, res.Path)
			assert.Contains(t, res.FinalResponse, "Response finalization failed")
			assert.NotContains(t, res.FinalResponse, "half-written")
			assert.Contains(t, res.ErrorMessage, tt.wantMsg)
			assert.Equal(t, 0.0, res.ConfidenceScore)
			assert.Empty(t, res.SourceDocuments)
		})
	}
}

func TestEncouragementOnWeakEvidence(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 20}}}
	p, lex := newTestPipeline(t, VariantFinal, r, &fakeCompleter{text: houseAnswer}, nil, random.Zero)

	res := p.Process(context.Background(), houseQuery)
	assert.Equal(t, houseAnswer+"\n\n"+lex.Fallback.Encouragements[0], res.FinalResponse)

	basic, _ := newTestPipeline(t, VariantBasic, r, &fakeCompleter{text: houseAnswer}, nil, random.Zero)
	assert.Equal(t, houseAnswer, basic.Process(context.Background(), houseQuery).FinalResponse)
}

func TestSimilarityReportIsDiagnostic(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	lex := lexicon.Default()
	comparer := similarity.NewComparer(lex, nil, similarity.DefaultConfig(), nil)

	p, _ := newTestPipeline(t, VariantSimilarity, r, &fakeCompleter{text: houseAnswer}, comparer, random.Zero)
	res := p.Process(context.Background(), houseQuery)
	assert.Equal(t, NodeFinalize, res.Terminal)
	assert.Equal(t, houseAnswer, res.FinalResponse)
	require.NotNil(t, res.Similarity)
	assert.Contains(t, res.SimilarityReport, "SIMILARITY COMPARISON REPORT")

	failing, _ := newTestPipeline(t, VariantSimilarity, r, &fakeCompleter{text: houseAnswer}, failingComparer{}, random.Zero)
	res = failing.Process(context.Background(), houseQuery)
	assert.Equal(t, NodeFinalize, res.Terminal)
	assert.Equal(t, houseAnswer, res.FinalResponse)
	assert.Nil(t, res.Similarity)
	assert.Empty(t, res.ErrorMessage)
}

func TestConversationContextReachesPrompt(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	c := &fakeCompleter{text: houseAnswer}
	p, _ := newTestPipeline(t, VariantBasic, r, c, nil, random.Zero)

	convo := "Previous conversation context:\nUser: I just joined as a farm manager\n"
	p.ProcessWithContext(context.Background(), houseQuery, convo)

	prompt, _ := c.prompts.Load(int32(1))
	assert.Contains(t, prompt, "I just joined as a farm manager")
}

func TestSeededRunsAreReproducible(t *testing.T) {
	run := func() Result {
		p, _ := newTestPipeline(t, VariantFinal, &fakeRetriever{}, &fakeCompleter{}, nil, random.New(7))
		return p.Process(context.Background(), "Tell me about the pension scheme for staff")
	}
	a, b := run(), run()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seeded runs differ (-a +b):\n%s", diff)
	}
}

func TestConcurrentProcess(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{{Passage: housePassage, Confidence: 80}}}
	c := &fakeCompleter{text: houseAnswer}
	p, _ := newTestPipeline(t, VariantFinal, r, c, nil, random.New(1))

	const n = 16
	results := make([]Result, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.Process(context.Background(), houseQuery)
		}()
	}
	wg.Wait()

	for i, res := range results {
		assert.Equal(t, houseAnswer, res.FinalResponse, "run %d", i)
		assert.Len(t, res.Path, 7, "run %d", i)
	}
	assert.Equal(t, int32(n), c.calls.Load())
}

func TestRunLogsCarryRequestLogger(t *testing.T) {
	r := &fakeRetriever{err: errors.New("index offline")}
	p, _ := newTestPipeline(t, VariantFinal, r, &fakeCompleter{}, nil, random.Zero)

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core).With(zap.String("request_id", "req-42")))
	res := p.Process(ctx, houseQuery)
	require.Equal(t, NodeError, res.Terminal)

	for _, msg := range []string{"node failed", "run complete"} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		assert.Equal(t, "pipeline", entries[0].LoggerName, msg)
		assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"], msg)
	}
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]Variant{"basic": VariantBasic, "similarity": VariantSimilarity, "final": VariantFinal, "": VariantFinal} {
		got, err := ParseVariant(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseVariant("turbo")
	assert.Error(t, err)
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Deps{}, Options{})
	assert.Error(t, err)
}
