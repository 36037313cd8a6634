package fallback

// #region imports
import (
	"strings"

	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/random"
)

// #endregion

// #region category
// Category selects the fallback response pool.
type Category string

const (
	NoContext        Category = lexicon.PoolNoContext
	LowConfidence    Category = lexicon.PoolLowConfidence
	GeneralHelp      Category = lexicon.PoolGeneralHelp
	PersonalIdentity Category = lexicon.PoolPersonalIdentity
	PersonalGreeting Category = lexicon.PoolPersonalGreeting
	HRContact        Category = lexicon.PoolHRContact
	Irrelevant       Category = lexicon.PoolIrrelevant
)

// IsPolicy reports whether c returns its pooled text verbatim, with no
// suggestions or contact block.
func (c Category) IsPolicy() bool {
	switch c {
	case PersonalIdentity, PersonalGreeting, HRContact, Irrelevant:
		return true
	}
	return false
}

// #endregion

// #region policy

// Policy produces typed fallback text when retrieval or validation does not
// justify a generated answer.
type Policy struct {
	tables lexicon.FallbackTables
	domain []string
	rng    random.Source
	log    *zap.Logger
}

// NewPolicy builds a Policy over the shared lexicon.
func NewPolicy(lex *lexicon.Lexicon, rng random.Source, log *zap.Logger) *Policy {
	if rng == nil {
		rng = random.System()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Policy{
		tables: lex.Fallback,
		domain: lex.Irrelevance.DomainKeywords,
		rng:    rng,
		log:    log.Named("fallback"),
	}
}

// #endregion

// #region respond

// Respond picks a pooled line for cat. Policy categories return it as is;
// the others append up to three topic suggestions and the contact block.
// Unknown categories draw from the no_context pool.
func (p *Policy) Respond(query string, confidence float64, cat Category) string {
	pool, ok := p.tables.Pools[string(cat)]
	if !ok || len(pool) == 0 {
		pool = p.tables.Pools[string(NoContext)]
	}
	line := random.Choice(p.rng, pool)
	if cat.IsPolicy() {
		return line
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n\n")
	if sugg := p.suggestions(query); len(sugg) > 0 {
		b.WriteString("Here's what I can help you with:\n")
		for i, s := range sugg {
			if i == 3 {
				break
			}
			b.WriteString("• " + s + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Need more help?\n")
	b.WriteString(strings.Join(p.tables.ContactLines, "\n"))
	b.WriteString("\n")

	if confidence > 0 {
		p.log.Debug("fallback with partial evidence",
			zap.String("category", string(cat)),
			zap.Float64("confidence", confidence),
		)
	}
	return b.String()
}

// suggestions returns the first topic group whose trigger words appear in
// the query, else three random general topics.
func (p *Policy) suggestions(query string) []string {
	lower := strings.ToLower(query)
	for _, g := range p.tables.SuggestionGroups {
		if containsAny(lower, g.Words) {
			return g.Suggestions
		}
	}
	return random.Sample(p.rng, p.tables.GeneralTopics, 3)
}

// #endregion

// #region categorize

// Categorize picks the fallback category from the query wording and the
// evidence available. confidence is on the 0-1 scale.
func (p *Policy) Categorize(query string, hits int, confidence float64) Category {
	lower := strings.ToLower(query)
	switch {
	case containsAny(lower, p.tables.IdentityKeywords):
		return PersonalIdentity
	case containsAny(lower, p.tables.GreetingKeywords):
		return PersonalGreeting
	case containsAny(lower, p.tables.HRContactWords):
		return HRContact
	case hits == 0 || confidence < 0.1:
		return NoContext
	case confidence < 0.3:
		return LowConfidence
	default:
		return GeneralHelp
	}
}

// IsIrrelevant reports whether query contains none of the domain keywords.
func (p *Policy) IsIrrelevant(query string) bool {
	return !containsAny(strings.ToLower(query), p.domain)
}

// Encouragement returns one pooled encouragement line.
func (p *Policy) Encouragement() string {
	return random.Choice(p.rng, p.tables.Encouragements)
}

// #endregion

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
