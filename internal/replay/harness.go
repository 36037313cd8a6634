package replay

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kazifarms/hr-assistant/internal/classifier"
	"github.com/kazifarms/hr-assistant/internal/fallback"
	"github.com/kazifarms/hr-assistant/internal/guard"
	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/matcher"
	"github.com/kazifarms/hr-assistant/internal/pipeline"
	"github.com/kazifarms/hr-assistant/internal/random"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
	"github.com/kazifarms/hr-assistant/internal/similarity"
)

// #endregion

// #region types

// CaseResult captures the outcome of replaying one case.
type CaseResult struct {
	ID         string
	Query      string
	Terminal   string
	MatchType  string
	QueryType  string
	Fallback   string
	Blocked    bool
	Confidence float64
	Response   string
	Mismatches []string
}

// Passed reports whether every expectation held.
func (r CaseResult) Passed() bool { return len(r.Mismatches) == 0 }

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total     int
	Passed    int
	Failed    int
	Terminals map[string]int
}

// Harness replays fixtures through fresh pipelines.
type Harness struct {
	lex     *lexicon.Lexicon
	workers int
	log     *zap.Logger
}

// NewHarness creates a Harness. workers <= 0 means one per case.
func NewHarness(lex *lexicon.Lexicon, workers int, log *zap.Logger) *Harness {
	if lex == nil {
		lex = lexicon.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Harness{lex: lex, workers: workers, log: log.Named("replay")}
}

// #endregion types

// #region replay

// Replay runs every case concurrently, each through its own pipeline seeded
// from the fixture so pooled responses are reproducible. Results keep the
// fixture order.
func (h *Harness) Replay(ctx context.Context, f *Fixture) ([]CaseResult, error) {
	variant := pipeline.VariantFinal
	if f.Config.Variant != "" {
		v, err := pipeline.ParseVariant(f.Config.Variant)
		if err != nil {
			return nil, err
		}
		variant = v
	}

	results := make([]CaseResult, len(f.Cases))
	g, ctx := errgroup.WithContext(ctx)
	if h.workers > 0 {
		g.SetLimit(h.workers)
	}
	for i := range f.Cases {
		c := &f.Cases[i]
		g.Go(func() error {
			p, err := h.build(c, variant, f.Config)
			if err != nil {
				return fmt.Errorf("case %s: %w", c.ID, err)
			}
			res := p.ProcessWithContext(ctx, c.Query, c.ConversationContext)
			results[i] = check(c, res)
			h.log.Debug("case replayed",
				zap.String("case", c.ID),
				zap.String("terminal", string(res.Terminal)),
				zap.Int("mismatches", len(results[i].Mismatches)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (h *Harness) build(c *Case, v pipeline.Variant, cfg FixtureConfig) (*pipeline.Pipeline, error) {
	rng := random.New(cfg.Seed)
	g, err := guard.NewGuard(h.lex, rng)
	if err != nil {
		return nil, err
	}
	m, err := matcher.NewMatcher(h.lex, nil)
	if err != nil {
		return nil, err
	}
	idx := &recordedIndex{candidates: c.Candidates()}
	if c.SearchError != "" {
		idx.err = errors.New(c.SearchError)
	}
	comp := &recordedCompleter{text: c.Completion}
	if c.CompletionError != "" {
		comp.err = errors.New(c.CompletionError)
	}
	return pipeline.New(pipeline.Deps{
		Guard:      g,
		Classifier: classifier.NewClassifier(h.lex, nil),
		Retriever:  retrieval.NewAdapter(idx, nil),
		Matcher:    m,
		Fallback:   fallback.NewPolicy(h.lex, rng, nil),
		Completer:  comp,
		Comparer:   similarity.NewComparer(h.lex, nil, similarity.DefaultConfig(), nil),
	}, pipeline.Options{Variant: v, TopK: cfg.TopK, Threshold: cfg.Threshold})
}

func check(c *Case, res pipeline.Result) CaseResult {
	out := CaseResult{
		ID:         c.ID,
		Query:      c.Query,
		Terminal:   string(res.Terminal),
		MatchType:  string(res.MatchType),
		Fallback:   string(res.FallbackCategory),
		Blocked:    res.Blocked,
		Confidence: res.ConfidenceScore,
		Response:   res.FinalResponse,
	}
	if res.QueryAnalysis != nil {
		out.QueryType = string(res.QueryAnalysis.QueryType)
	}

	want := c.Expected
	expect := func(field, want, got string) {
		if want != "" && want != got {
			out.Mismatches = append(out.Mismatches, fmt.Sprintf("%s: expected %q, got %q", field, want, got))
		}
	}
	expect("terminal", want.Terminal, out.Terminal)
	expect("match_type", want.MatchType, out.MatchType)
	expect("query_type", want.QueryType, out.QueryType)
	expect("fallback_category", want.FallbackCategory, out.Fallback)
	if want.Blocked != nil && *want.Blocked != out.Blocked {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf("blocked: expected %t, got %t", *want.Blocked, out.Blocked))
	}
	if want.ResponseContains != "" && !strings.Contains(out.Response, want.ResponseContains) {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf("response: expected to contain %q", want.ResponseContains))
	}
	return out
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results), Terminals: make(map[string]int)}
	for _, r := range results {
		s.Terminals[r.Terminal]++
		if r.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// #endregion replay

// #region recorded

// recordedIndex plays back a case's passages. The keyword path returns the
// same passages unscored, which the adapter dedupes away.
type recordedIndex struct {
	candidates []retrieval.Candidate
	err        error
}

func (r *recordedIndex) ScoredSearch(_ context.Context, _ string, k int) ([]retrieval.Candidate, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.candidates[:min(k, len(r.candidates))], nil
}

func (r *recordedIndex) Search(_ context.Context, _ string, k int) ([]retrieval.Passage, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]retrieval.Passage, 0, min(k, len(r.candidates)))
	for _, c := range r.candidates[:min(k, len(r.candidates))] {
		out = append(out, c.Passage)
	}
	return out, nil
}

type recordedCompleter struct {
	text string
	err  error
}

func (r *recordedCompleter) Complete(context.Context, string) (string, error) {
	return r.text, r.err
}

// #endregion recorded
