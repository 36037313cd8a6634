package pipeline

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/classifier"
	"github.com/kazifarms/hr-assistant/internal/fallback"
	"github.com/kazifarms/hr-assistant/internal/guard"
	"github.com/kazifarms/hr-assistant/internal/logger"
	"github.com/kazifarms/hr-assistant/internal/matcher"
	"github.com/kazifarms/hr-assistant/internal/metrics"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
	"github.com/kazifarms/hr-assistant/internal/similarity"
)

// #endregion

const (
	invalidResponse = "I apologize, but I couldn't generate a relevant response to your query. Please try rephrasing your question or contact our support team for assistance."
	errorResponse   = "I encountered an issue while processing your request: %s. Please try again or contact Kazifarm directly for assistance."

	maxSteps = 16
)

// stageLabels is the user-safe prefix for each node's failure.
var stageLabels = map[Node]string{
	NodeAnalyze:  "Query analysis failed",
	NodeSearch:   "Vector search failed",
	NodeMatch:    "Query matching failed",
	NodeGenerate: "Response generation failed",
	NodeValidate: "Response validation failed",
	NodeFinalize: "Response finalization failed",
	NodeReport:   "Similarity comparison failed",
}

// #region deps

// Deps are the collaborators a Pipeline is built from. Guard, Classifier,
// Matcher and Fallback are required. A nil Retriever fails every search, a
// nil Completer sends every generation to the fallback policy and a nil
// Comparer skips the similarity report.
type Deps struct {
	Guard      *guard.Guard
	Classifier *classifier.Classifier
	Retriever  Retriever
	Matcher    *matcher.Matcher
	Fallback   *fallback.Policy
	Completer  Completer
	Comparer   Comparer
	Log        *zap.Logger
}

// Options tune one Pipeline.
type Options struct {
	Variant   Variant
	TopK      int
	Threshold float64 // 0-100
	// Transitions overrides the graph; nil uses DefaultTransitions.
	Transitions Transitions
}

// #endregion

// #region pipeline

// Pipeline runs queries through the guarded, confidence-gated answer graph.
// It holds only immutable collaborators; every run gets a fresh State.
type Pipeline struct {
	deps        Deps
	opts        Options
	generator   Generator
	finalizer   Finalizer
	transitions Transitions
	log         *zap.Logger
}

// New wires the strategies for opts.Variant and validates the graph.
func New(d Deps, opts Options) (*Pipeline, error) {
	if d.Guard == nil || d.Classifier == nil || d.Matcher == nil || d.Fallback == nil {
		return nil, errors.New("pipeline: guard, classifier, matcher and fallback are required")
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if opts.Variant == "" {
		opts.Variant = VariantFinal
	}
	if opts.TopK <= 0 {
		opts.TopK = retrieval.DefaultConfig().TopK
	}
	log := d.Log.Named("pipeline")

	gen, fin, withReport, err := strategiesFor(opts.Variant, d, log)
	if err != nil {
		return nil, err
	}
	t := opts.Transitions
	if t == nil {
		t = DefaultTransitions(withReport)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Pipeline{
		deps:        d,
		opts:        opts,
		generator:   gen,
		finalizer:   fin,
		transitions: t,
		log:         log,
	}, nil
}

// ParseVariant maps a config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantBasic, VariantSimilarity, VariantFinal:
		return v, nil
	case "":
		return VariantFinal, nil
	}
	return "", fmt.Errorf("unknown pipeline variant %q", s)
}

func strategiesFor(v Variant, d Deps, log *zap.Logger) (Generator, Finalizer, bool, error) {
	switch v {
	case VariantBasic:
		return NewDirectGenerator(d.Matcher, d.Completer, d.Fallback, log), PlainFinalizer{}, false, nil
	case VariantSimilarity:
		return NewDirectGenerator(d.Matcher, d.Completer, d.Fallback, log), PlainFinalizer{}, true, nil
	case VariantFinal:
		return NewFallbackGenerator(d.Matcher, d.Completer, d.Fallback, log), NewEncouragingFinalizer(d.Fallback), true, nil
	}
	return nil, nil, false, fmt.Errorf("unknown pipeline variant %q", v)
}

// Variant returns the configured variant.
func (p *Pipeline) Variant() Variant { return p.opts.Variant }

// #endregion

// #region process

// Process answers a query with no conversation context.
func (p *Pipeline) Process(ctx context.Context, query string) Result {
	return p.ProcessWithContext(ctx, query, "")
}

// ProcessWithContext answers a query. The run always reaches a terminal
// node; failures surface as the error_handling answer, never as an error.
func (p *Pipeline) ProcessWithContext(ctx context.Context, query, conversationContext string) Result {
	st := newState(query, conversationContext, logger.Scoped(ctx, "pipeline", p.log))
	p.run(ctx, st)

	if st.FinalResponse == "" {
		if st.ErrorStage == "" {
			st.ErrorStage = "Unknown error"
		}
		st.FinalResponse = fmt.Sprintf(errorResponse, st.ErrorStage)
		st.Confidence = 0
		st.Sources = nil
	}

	res := Result{
		FinalResponse:    st.FinalResponse,
		ConfidenceScore:  st.Confidence,
		SourceDocuments:  st.Sources,
		QueryAnalysis:    st.Analysis,
		Terminal:         st.Terminal,
		Path:             st.Path,
		Blocked:          st.Blocked,
		FallbackCategory: st.FallbackCategory,
		Similarity:       st.Similarity,
		SimilarityReport: st.SimilarityReport,
		ErrorMessage:     st.ErrorMessage,
	}
	if res.SourceDocuments == nil {
		res.SourceDocuments = []retrieval.Passage{}
	}
	if st.Analysis != nil {
		res.FollowupSuggestion = st.Analysis.SuggestedFollowup
	}
	if st.Match != nil {
		res.MatchType = st.Match.MatchType
	}

	metrics.PipelineRunsTotal.WithLabelValues(string(p.opts.Variant), string(st.Terminal)).Inc()
	st.log.Info("run complete",
		zap.String("terminal", string(st.Terminal)),
		zap.Float64("confidence", res.ConfidenceScore),
		zap.Int("sources", len(res.SourceDocuments)),
		zap.String("match_type", string(res.MatchType)),
		zap.Bool("blocked", res.Blocked),
	)
	return res
}

// #endregion

// #region runner

func (p *Pipeline) run(ctx context.Context, st *State) {
	node := NodeAnalyze
	for range maxSteps {
		st.Path = append(st.Path, node)
		if node.IsTerminal() {
			st.Terminal = node
		}
		outcome := p.step(ctx, node, st)
		next, ok := p.transitions.Next(node, outcome)
		if !ok {
			return
		}
		node = next
	}
	st.log.Error("step limit reached", zap.Any("path", st.Path))
}

// step runs one node behind a recover boundary and maps its result to an
// outcome.
func (p *Pipeline) step(ctx context.Context, node Node, st *State) (out Outcome) {
	start := time.Now()
	defer func() {
		metrics.NodeDuration.WithLabelValues(string(node)).Observe(time.Since(start).Seconds())
	}()
	defer func() {
		if r := recover(); r != nil {
			p.fail(st, node, fmt.Errorf("panic: %v", r))
			out = OutcomeHalt
		}
	}()

	outcome, err := p.exec(ctx, node, st)
	if err != nil {
		p.fail(st, node, err)
		return OutcomeHalt
	}
	if !st.ShouldContinue {
		return OutcomeHalt
	}
	return outcome
}

func (p *Pipeline) exec(ctx context.Context, node Node, st *State) (Outcome, error) {
	switch node {
	case NodeAnalyze:
		return p.analyze(st), nil
	case NodeSearch:
		return OutcomeOK, p.search(ctx, st)
	case NodeMatch:
		return p.match(st), nil
	case NodeGenerate:
		return OutcomeOK, p.generate(ctx, st)
	case NodeValidate:
		return p.validate(st), nil
	case NodeFinalize:
		return OutcomeOK, p.finalizer.Finalize(st)
	case NodeReport:
		p.report(ctx, st)
		return OutcomeOK, nil
	case NodeInvalid:
		st.FinalResponse = invalidResponse
		st.Confidence = 0
		st.Sources = nil
		return OutcomeOK, nil
	case NodeError:
		stage := st.ErrorStage
		if stage == "" {
			stage = "Unknown error"
		}
		st.FinalResponse = fmt.Sprintf(errorResponse, stage)
		st.Confidence = 0
		st.Sources = nil
		return OutcomeOK, nil
	case NodeBlocked:
		return OutcomeOK, nil
	}
	return OutcomeHalt, fmt.Errorf("unknown node %q", node)
}

// fail records a node failure. The report node is diagnostic only, so its
// failures are logged and otherwise ignored.
func (p *Pipeline) fail(st *State, node Node, err error) {
	label, ok := stageLabels[node]
	if !ok {
		label = "Processing failed"
	}
	if node == NodeReport {
		st.log.Warn(label, zap.Error(err))
		return
	}
	st.ErrorStage = label
	st.ErrorMessage = label + ": " + err.Error()
	st.ShouldContinue = false
	st.log.Error("node failed", zap.String("node", string(node)), zap.Error(err))
}

// #endregion

// #region nodes

func (p *Pipeline) analyze(st *State) Outcome {
	st.Guard = p.deps.Guard.Evaluate(st.Query)
	if st.Guard.Blocked {
		st.FinalResponse = st.Guard.Response
		st.Confidence = 0
		st.Blocked = true
		metrics.GuardBlocksTotal.WithLabelValues(string(st.Guard.Category)).Inc()
		st.log.Info("query blocked", zap.String("category", string(st.Guard.Category)))
		return OutcomeBlocked
	}

	a := p.deps.Classifier.Analyze(st.Query)
	st.Analysis = &a
	st.log.Debug("query analyzed",
		zap.String("query_type", string(a.QueryType)),
		zap.Bool("complete", a.IsComplete),
		zap.String("followup", a.SuggestedFollowup),
	)
	return OutcomeOK
}

func (p *Pipeline) search(ctx context.Context, st *State) error {
	if p.deps.Retriever == nil {
		return retrieval.ErrNoIndex
	}
	hits, err := p.deps.Retriever.Search(ctx, st.Query, p.opts.TopK, p.opts.Threshold)
	if err != nil {
		return err
	}
	st.Hits = hits
	metrics.RetrievalHits.Observe(float64(len(hits)))
	st.log.Debug("retrieved", zap.Int("hits", len(hits)), zap.Float64("highest", st.highest()))
	return nil
}

func (p *Pipeline) match(st *State) Outcome {
	m := p.deps.Matcher.Match(st.Query, st.passages())
	st.Match = &m
	metrics.MatchTypeTotal.WithLabelValues(string(m.MatchType)).Inc()
	return OutcomeOK
}

func (p *Pipeline) generate(ctx context.Context, st *State) error {
	if err := p.generator.Generate(ctx, st); err != nil {
		return err
	}
	if st.FromFallback {
		metrics.FallbackResponsesTotal.WithLabelValues(string(st.FallbackCategory)).Inc()
	}
	return nil
}

// validate skips fallback text: it is pooled policy text, not a model answer.
func (p *Pipeline) validate(st *State) Outcome {
	if st.FromFallback {
		st.IsValid = true
		return OutcomeOK
	}
	st.IsValid = p.deps.Matcher.ValidateRelevance(st.Query, st.Generated, joinHits(st))
	if !st.IsValid {
		st.ValidationReason = "answer failed relevance checks"
		st.log.Info("answer rejected", zap.Int("answer_len", len(st.Generated)))
		return OutcomeInvalid
	}
	return OutcomeOK
}

func (p *Pipeline) report(ctx context.Context, st *State) {
	if p.deps.Comparer == nil {
		return
	}
	m, err := p.deps.Comparer.Compare(ctx, st.Query, st.FinalResponse)
	if err != nil {
		st.log.Warn(stageLabels[NodeReport], zap.Error(err))
		return
	}
	st.Similarity = &m
	st.SimilarityReport = similarity.Report(st.Query, st.FinalResponse, m)
	st.log.Debug("similarity",
		zap.Float64("overall", m.Overall),
		zap.String("level", string(m.Level)),
	)
}

// #endregion
