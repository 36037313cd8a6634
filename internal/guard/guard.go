package guard

// #region imports
import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/random"
)

// #endregion

// #region decision
// Category names which pattern set fired.
type Category string

const (
	CategoryNone     Category = "none"
	CategoryIdentity Category = "identity"
	CategoryGreeting Category = "greeting"
)

// Decision is the guard's verdict for one query.
type Decision struct {
	Blocked  bool
	Response string
	Category Category
}

// #endregion

// #region guard

// Guard pre-empts personal identity and small-talk queries before any
// retrieval happens.
type Guard struct {
	identity    []*regexp.Regexp
	greeting    []*regexp.Regexp
	blocked     []string
	greetings   []string
	suggestions []string
	rng         random.Source
}

// NewGuard compiles the guard patterns from the lexicon.
func NewGuard(lex *lexicon.Lexicon, rng random.Source) (*Guard, error) {
	identity, err := compile(lex.Guard.IdentityPatterns)
	if err != nil {
		return nil, fmt.Errorf("identity patterns: %w", err)
	}
	greeting, err := compile(lex.Guard.GreetingPatterns)
	if err != nil {
		return nil, fmt.Errorf("greeting patterns: %w", err)
	}
	if rng == nil {
		rng = random.System()
	}
	return &Guard{
		identity:    identity,
		greeting:    greeting,
		blocked:     lex.Guard.BlockedResponses,
		greetings:   lex.Guard.GreetingResponses,
		suggestions: lex.Guard.Suggestions,
		rng:         rng,
	}, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// #endregion

// #region evaluate

// Evaluate checks greeting patterns first, then identity patterns, against
// the lowercased trimmed query.
func (g *Guard) Evaluate(query string) Decision {
	q := strings.ToLower(strings.TrimSpace(query))

	if anyMatch(g.greeting, q) {
		return Decision{
			Blocked:  true,
			Response: random.Choice(g.rng, g.greetings),
			Category: CategoryGreeting,
		}
	}
	if anyMatch(g.identity, q) {
		return Decision{
			Blocked:  true,
			Response: g.redirect(),
			Category: CategoryIdentity,
		}
	}
	return Decision{Category: CategoryNone}
}

func (g *Guard) redirect() string {
	var b strings.Builder
	b.WriteString(random.Choice(g.rng, g.blocked))
	b.WriteString("\n\nHere's what I can help you with:\n")
	for i, s := range random.Sample(g.rng, g.suggestions, 3) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + s)
	}
	b.WriteString("\n\nPlease ask about any of these topics, and I'll be happy to assist you!")
	return b.String()
}

// #endregion

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
