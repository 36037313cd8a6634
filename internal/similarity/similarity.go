package similarity

// #region imports
import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
)

// #endregion

// #region comparer

// Comparer scores how closely an answer tracks its query. The semantic
// metric needs an Embedder; without one it reports 0.
type Comparer struct {
	config   Config
	embedder Embedder
	stop     map[string]bool
	domain   map[string]bool
	log      *zap.Logger
}

// NewComparer creates a Comparer. embedder may be nil.
func NewComparer(lex *lexicon.Lexicon, embedder Embedder, config Config, log *zap.Logger) *Comparer {
	if log == nil {
		log = zap.NewNop()
	}
	domain := make(map[string]bool, len(lex.Matcher.GeneralBoosts))
	for _, b := range lex.Matcher.GeneralBoosts {
		domain[b.Term] = true
	}
	stop := make(map[string]bool, len(lex.Matcher.StopWords))
	for _, w := range lex.Matcher.StopWords {
		stop[w] = true
	}
	return &Comparer{
		config:   config,
		embedder: embedder,
		stop:     stop,
		domain:   domain,
		log:      log.Named("similarity"),
	}
}

// Compare computes all four metrics and the weighted overall score. A
// failing embedder zeroes the semantic metric and is logged, not returned.
func (c *Comparer) Compare(ctx context.Context, query, answer string) (Metrics, error) {
	q, a := clean(query), clean(answer)

	m := Metrics{
		Semantic:   c.semantic(ctx, q, a),
		Keyword:    c.keyword(q, a),
		Structural: structural(q, a),
		Content:    c.content(q, a),
	}
	m.Overall = m.Semantic*c.config.SemanticWeight +
		m.Keyword*c.config.KeywordWeight +
		m.Structural*c.config.StructuralWeight +
		m.Content*c.config.ContentWeight
	m.Level = c.level(m.Overall)
	return m, nil
}

func (c *Comparer) level(overall float64) Level {
	switch {
	case overall >= c.config.Excellent:
		return LevelExcellent
	case overall >= c.config.Good:
		return LevelGood
	case overall >= c.config.Fair:
		return LevelFair
	}
	return LevelPoor
}

// #endregion

// #region metrics

func (c *Comparer) semantic(ctx context.Context, q, a string) float64 {
	if c.embedder == nil || q == "" || a == "" {
		return 0
	}
	vecs, err := c.embedder.Embed(ctx, []string{q, a})
	if err != nil || len(vecs) != 2 {
		c.log.Warn("semantic similarity unavailable", zap.Error(err))
		return 0
	}
	return cosine32(vecs[0], vecs[1])
}

// keyword is a TF-IDF cosine over unigrams and bigrams of the two texts,
// stop words removed, with smoothed idf fitted on the pair.
func (c *Comparer) keyword(q, a string) float64 {
	qt, at := c.terms(q), c.terms(a)
	if len(qt) == 0 || len(at) == 0 {
		return 0
	}
	qtf, atf := counts(qt), counts(at)

	idf := func(term string) float64 {
		df := 0
		if qtf[term] > 0 {
			df++
		}
		if atf[term] > 0 {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1
	}
	weigh := func(tf map[string]int) map[string]float64 {
		w := make(map[string]float64, len(tf))
		for t, n := range tf {
			w[t] = float64(n) * idf(t)
		}
		return w
	}
	return cosineMap(weigh(qtf), weigh(atf))
}

func (c *Comparer) terms(text string) []string {
	var words []string
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) < 2 || c.stop[w] {
			continue
		}
		words = append(words, w)
	}
	out := append([]string(nil), words...)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

// structural averages the character sequence ratio and word Jaccard.
func structural(q, a string) float64 {
	seq := difflib.NewMatcher(chars(q), chars(a)).Ratio()

	qw, aw := wordSet(q), wordSet(a)
	var jaccard float64
	if len(qw) > 0 && len(aw) > 0 {
		inter := 0
		for w := range qw {
			if aw[w] {
				inter++
			}
		}
		jaccard = float64(inter) / float64(len(qw)+len(aw)-inter)
	}
	return (seq + jaccard) / 2
}

// content averages the share of domain words in each text.
func (c *Comparer) content(q, a string) float64 {
	qw, aw := strings.Fields(q), strings.Fields(a)
	if len(qw) == 0 || len(aw) == 0 {
		return 0
	}
	share := func(words []string) float64 {
		n := 0
		for _, w := range words {
			if c.domain[w] {
				n++
			}
		}
		return float64(n) / float64(len(words))
	}
	return (share(qw) + share(aw)) / 2
}

// #endregion

// #region helpers

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

func clean(text string) string {
	return strings.Join(strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " ")), " ")
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func counts(terms []string) map[string]int {
	m := make(map[string]int, len(terms))
	for _, t := range terms {
		m[t]++
	}
	return m
}

func cosineMap(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for t, x := range a {
		na += x * x
		dot += x * b[t]
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func cosine32(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// #endregion
