package matcher

// #region imports
import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

// #endregion

// #region matcher

// Matcher scores query-vs-passage relevance with string-distance ratios and
// fixed domain boosts, and validates generated answers.
type Matcher struct {
	tables   lexicon.MatcherTables
	stop     map[string]bool
	patterns []*regexp.Regexp
	hr       map[string]bool
	dept     map[string]bool
	location map[string]bool
	role     map[string]bool
	log      *zap.Logger
}

// NewMatcher compiles the question patterns and builds lookup sets.
func NewMatcher(lex *lexicon.Lexicon, log *zap.Logger) (*Matcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := lex.Matcher
	m := &Matcher{
		tables:   t,
		stop:     set(t.StopWords),
		hr:       set(t.HRTopics),
		dept:     set(t.Departments),
		location: set(t.Locations),
		role:     set(t.Roles),
		log:      log.Named("matcher"),
	}
	for _, p := range t.QuestionPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("question pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// #endregion

// #region match

// Match picks the passage with the strictly highest cumulative score.
// Ties keep the earlier passage.
func (m *Matcher) Match(query string, passages []retrieval.Passage) MatchResult {
	keywords := m.ExtractKeywords(query)
	if len(passages) == 0 {
		return MatchResult{MatchType: MatchNoContent, KeywordsFound: keywords, Index: -1}
	}

	pattern, matched := m.MatchPattern(query)
	best, bestIdx := 0.0, -1
	for i, p := range passages {
		score := m.Similarity(query, p.Text)
		if matched {
			score += 0.2
		}
		if src := strings.ToLower(p.Source()); src != "" && containsAny(src, keywords) {
			score += 0.1
		}
		if score > best {
			best, bestIdx = score, i
		}
	}

	res := MatchResult{
		Confidence:    best,
		MatchType:     TypeFor(best),
		KeywordsFound: keywords,
		IsReliable:    best >= ReliableThreshold && len(keywords) > 0 && best > 0,
		Pattern:       pattern,
		Index:         bestIdx,
	}
	if bestIdx >= 0 {
		res.MatchedContent = passages[bestIdx].Text
	}
	m.log.Debug("match",
		zap.Float64("score", best),
		zap.String("match_type", string(res.MatchType)),
		zap.Int("keywords", len(keywords)),
		zap.Bool("reliable", res.IsReliable),
	)
	return res
}

// ShouldAnswer reports whether a match is strong enough to ground a
// generated answer, with the reason when it is not.
func ShouldAnswer(r MatchResult) (bool, string) {
	switch {
	case !r.IsReliable:
		return false, "The query doesn't match well with our database content. I don't have reliable information to answer this question."
	case r.Confidence < ReliableThreshold:
		return false, "I don't have specific information about this in our database. Please contact Kazifarm directly for detailed information."
	case r.MatchType == MatchWeak:
		return false, "I found some related information but it's not specific enough to provide a reliable answer. Please rephrase your question or contact Kazifarm for more details."
	}
	return true, ""
}

// #endregion

// #region similarity

// Similarity is the per-passage score before the pattern and metadata
// bonuses: sequence ratio, category overlap, one phrase boost and up to
// MaxGeneral keyword boosts, capped at 1.0.
func (m *Matcher) Similarity(query, content string) float64 {
	sim := ratio(Clean(query), Clean(content))

	qk := m.ExtractKeywords(query)
	ck := set(m.ExtractKeywords(content))
	shared := make([]string, 0, len(qk))
	for _, k := range qk {
		if ck[k] {
			shared = append(shared, k)
		}
	}
	if len(shared) > 0 {
		hr := countIn(shared, m.hr)
		dept := countIn(shared, m.dept)
		loc := countIn(shared, m.location)
		role := countIn(shared, m.role)
		sim += 0.25*float64(hr) + 0.2*float64(dept) + 0.2*float64(loc) + 0.3*float64(role)
		if hr+dept+loc+role == 0 {
			sim += 0.1 * float64(len(shared))
		}
	}

	ql, cl := strings.ToLower(query), strings.ToLower(content)
	for _, b := range m.tables.PhraseBoosts {
		if strings.Contains(ql, b.Term) && strings.Contains(cl, b.Term) {
			sim += b.Boost
			break
		}
	}
	applied := 0
	for _, b := range m.tables.GeneralBoosts {
		if applied >= m.tables.MaxGeneral {
			break
		}
		if strings.Contains(ql, b.Term) && strings.Contains(cl, b.Term) {
			sim += b.Boost
			applied++
		}
	}
	return math.Min(sim, 1.0)
}

// ratio is difflib's SequenceMatcher ratio over the characters of a and b.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// #endregion

// #region keywords

var punct = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Clean lowercases, replaces punctuation with spaces and collapses
// whitespace. Stop words are kept.
func Clean(text string) string {
	return strings.Join(strings.Fields(punct.ReplaceAllString(strings.ToLower(text), " ")), " ")
}

// Preprocess is Clean with stop words and single-character tokens dropped.
func (m *Matcher) Preprocess(text string) string {
	tokens := strings.Fields(Clean(text))
	kept := tokens[:0]
	for _, tok := range tokens {
		if m.stop[tok] || len([]rune(tok)) <= 1 {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// ExtractKeywords returns the domain terms contained in the preprocessed
// text, deduplicated, in domain-table order.
func (m *Matcher) ExtractKeywords(text string) []string {
	processed := m.Preprocess(text)
	if processed == "" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, g := range m.tables.Domain {
		for _, term := range g.Terms {
			if seen[term] || !strings.Contains(processed, term) {
				continue
			}
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}

// MatchPattern returns the first question pattern found in query.
func (m *Matcher) MatchPattern(query string) (string, bool) {
	lower := strings.ToLower(query)
	for _, re := range m.patterns {
		if re.MatchString(lower) {
			return re.String(), true
		}
	}
	return "", false
}

// #endregion

func set(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

func countIn(items []string, s map[string]bool) int {
	n := 0
	for _, it := range items {
		if s[it] {
			n++
		}
	}
	return n
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
