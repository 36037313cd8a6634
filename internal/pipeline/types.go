package pipeline

// #region imports
import (
	"context"

	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/classifier"
	"github.com/kazifarms/hr-assistant/internal/fallback"
	"github.com/kazifarms/hr-assistant/internal/guard"
	"github.com/kazifarms/hr-assistant/internal/matcher"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
	"github.com/kazifarms/hr-assistant/internal/similarity"
)

// #endregion

// #region nodes
// Node names a state-machine node.
type Node string

const (
	NodeAnalyze  Node = "analyze_query"
	NodeSearch   Node = "vector_search"
	NodeMatch    Node = "query_matching"
	NodeGenerate Node = "response_generation"
	NodeValidate Node = "response_validation"
	NodeFinalize Node = "finalize_response"
	NodeInvalid  Node = "end_invalid_response"
	NodeError    Node = "error_handling"
	NodeBlocked  Node = "end_blocked"
	NodeReport   Node = "similarity_report"
)

// IsTerminal reports whether reaching n settles the run's answer.
func (n Node) IsTerminal() bool {
	switch n {
	case NodeFinalize, NodeInvalid, NodeError, NodeBlocked:
		return true
	}
	return false
}

// Outcome is what a node reports to the transition table.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeHalt    Outcome = "halt" // node set ShouldContinue=false
	OutcomeBlocked Outcome = "blocked"
	OutcomeInvalid Outcome = "invalid"
)

// #endregion

// #region variant
// Variant selects the generation and finalization strategies.
type Variant string

const (
	VariantBasic      Variant = "basic"      // direct generation, plain finalize
	VariantSimilarity Variant = "similarity" // basic plus similarity report
	VariantFinal      Variant = "final"      // fallback-aware generation, encouraging finalize, report
)

// #endregion

// #region collaborators
// Retriever returns confidence-scored hits for a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int, threshold float64) ([]retrieval.Hit, error)
}

// Completer is the generative model: one prompt in, one text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Comparer produces the diagnostic similarity metrics.
type Comparer interface {
	Compare(ctx context.Context, query, answer string) (similarity.Metrics, error)
}

// #endregion

// #region state
// State is the single mutable record threaded through one run. Created
// fresh per run and never shared.
type State struct {
	Query               string
	ConversationContext string

	Guard    guard.Decision
	Analysis *classifier.QueryAnalysis
	Hits     []retrieval.Hit
	Match    *matcher.MatchResult

	Generated        string
	FromFallback     bool
	FallbackCategory fallback.Category
	Sources          []retrieval.Passage

	IsValid          bool
	ValidationReason string

	FinalResponse string
	Confidence    float64 // 0-100, highest hit confidence

	ErrorStage     string // user-safe stage label
	ErrorMessage   string // full error, operator-facing
	ShouldContinue bool
	Blocked        bool

	Similarity       *similarity.Metrics
	SimilarityReport string

	Path     []Node
	Terminal Node

	log *zap.Logger
}

func newState(query, conversationContext string, log *zap.Logger) *State {
	return &State{
		Query:               query,
		ConversationContext: conversationContext,
		IsValid:             true,
		ShouldContinue:      true,
		log:                 log,
	}
}

// highest returns the top hit confidence, 0 without hits.
func (s *State) highest() float64 {
	if len(s.Hits) == 0 {
		return 0
	}
	return s.Hits[0].Confidence
}

func (s *State) passages() []retrieval.Passage {
	out := make([]retrieval.Passage, len(s.Hits))
	for i, h := range s.Hits {
		out[i] = h.Passage
	}
	return out
}

// #endregion

// #region result
// Result is what a caller sees for one query.
type Result struct {
	FinalResponse      string                    `json:"final_response"`
	ConfidenceScore    float64                   `json:"confidence_score"`
	SourceDocuments    []retrieval.Passage       `json:"source_documents"`
	QueryAnalysis      *classifier.QueryAnalysis `json:"query_analysis,omitempty"`
	FollowupSuggestion string                    `json:"followup_suggestion"`
	Terminal           Node                      `json:"terminal"`
	Path               []Node                    `json:"path"`
	MatchType          matcher.MatchType         `json:"match_type,omitempty"`
	Blocked            bool                      `json:"blocked"`
	FallbackCategory   fallback.Category         `json:"fallback_category,omitempty"`
	Similarity         *similarity.Metrics       `json:"similarity,omitempty"`
	SimilarityReport   string                    `json:"-"`
	ErrorMessage       string                    `json:"-"`
}

// #endregion
