package pipeline

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/fallback"
	"github.com/kazifarms/hr-assistant/internal/matcher"
)

// #endregion

// #region interfaces
// Generator fills State.Generated and State.Sources.
type Generator interface {
	Generate(ctx context.Context, st *State) error
}

// Finalizer turns the validated answer into State.FinalResponse.
type Finalizer interface {
	Finalize(st *State) error
}

// #endregion

// #region direct-generator

// DirectGenerator always prompts the model with every hit as context. A
// model failure is answered from the fallback policy instead of failing the
// run.
type DirectGenerator struct {
	matcher   *matcher.Matcher
	completer Completer
	fallback  *fallback.Policy
	log       *zap.Logger
}

func NewDirectGenerator(m *matcher.Matcher, c Completer, f *fallback.Policy, log *zap.Logger) *DirectGenerator {
	return &DirectGenerator{matcher: m, completer: c, fallback: f, log: log}
}

func (g *DirectGenerator) Generate(ctx context.Context, st *State) error {
	prompt := g.matcher.BuildPrompt(st.Query, joinHits(st), st.ConversationContext)
	text, err := complete(ctx, g.completer, prompt)
	if err != nil {
		g.log.Warn("generation failed, answering from fallback", zap.Error(err))
		useFallback(st, g.fallback, g.fallback.Categorize(st.Query, len(st.Hits), matchConfidence(st)))
		return nil
	}
	st.Generated = text
	st.Sources = st.passages()
	return nil
}

// #endregion

// #region fallback-generator

// FallbackGenerator only prompts the model when the evidence supports it:
// no hits, an unreliable match, a generic non-answer or a model failure all
// produce fallback text instead.
type FallbackGenerator struct {
	matcher   *matcher.Matcher
	completer Completer
	fallback  *fallback.Policy
	log       *zap.Logger
}

func NewFallbackGenerator(m *matcher.Matcher, c Completer, f *fallback.Policy, log *zap.Logger) *FallbackGenerator {
	return &FallbackGenerator{matcher: m, completer: c, fallback: f, log: log}
}

func (g *FallbackGenerator) Generate(ctx context.Context, st *State) error {
	if len(st.Hits) == 0 {
		cat := g.fallback.Categorize(st.Query, 0, 0)
		if g.fallback.IsIrrelevant(st.Query) {
			cat = fallback.Irrelevant
		}
		useFallback(st, g.fallback, cat)
		return nil
	}

	if st.Match != nil && !st.Match.IsReliable {
		_, reason := matcher.ShouldAnswer(*st.Match)
		g.log.Info("match not reliable, answering from fallback",
			zap.String("reason", reason),
			zap.Float64("match_confidence", st.Match.Confidence),
		)
		useFallback(st, g.fallback, g.fallback.Categorize(st.Query, len(st.Hits), st.Match.Confidence))
		return nil
	}

	prompt := g.matcher.BuildPrompt(st.Query, joinHits(st), st.ConversationContext)
	text, err := complete(ctx, g.completer, prompt)
	if err != nil {
		g.log.Warn("generation failed, answering from fallback", zap.Error(err))
		useFallback(st, g.fallback, g.fallback.Categorize(st.Query, len(st.Hits), matchConfidence(st)))
		return nil
	}
	if g.matcher.IsGeneric(text) {
		g.log.Info("model gave a generic non-answer, answering from fallback")
		useFallback(st, g.fallback, g.fallback.Categorize(st.Query, len(st.Hits), matchConfidence(st)))
		return nil
	}
	st.Generated = text
	st.Sources = st.passages()
	return nil
}

// #endregion

// #region finalizers

// PlainFinalizer returns the validated answer as is.
type PlainFinalizer struct{}

func (PlainFinalizer) Finalize(st *State) error {
	st.FinalResponse = st.Generated
	st.Confidence = st.highest()
	return nil
}

// EncouragingFinalizer appends an encouragement line when the evidence is
// weak (highest confidence under 25 or no sources). Verbatim policy
// responses are left untouched.
type EncouragingFinalizer struct {
	fallback *fallback.Policy
}

func NewEncouragingFinalizer(f *fallback.Policy) *EncouragingFinalizer {
	return &EncouragingFinalizer{fallback: f}
}

func (f *EncouragingFinalizer) Finalize(st *State) error {
	st.FinalResponse = st.Generated
	st.Confidence = st.highest()
	if st.FromFallback && st.FallbackCategory.IsPolicy() {
		return nil
	}
	if st.Confidence < 25 || len(st.Sources) == 0 {
		st.FinalResponse += "\n\n" + f.fallback.Encouragement()
	}
	return nil
}

// #endregion

// #region helpers

func complete(ctx context.Context, c Completer, prompt string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("no completer configured")
	}
	return c.Complete(ctx, prompt)
}

func useFallback(st *State, p *fallback.Policy, cat fallback.Category) {
	st.Generated = p.Respond(st.Query, matchConfidence(st), cat)
	st.FromFallback = true
	st.FallbackCategory = cat
	st.Sources = nil
}

func matchConfidence(st *State) float64 {
	if st.Match == nil {
		return 0
	}
	return st.Match.Confidence
}

func joinHits(st *State) string {
	texts := make([]string, len(st.Hits))
	for i, h := range st.Hits {
		texts[i] = h.Passage.Text
	}
	return strings.Join(texts, "\n\n")
}

// #endregion
