package classifier

// #region imports
import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
)

// #endregion

// #region classifier

// Classifier assigns a QueryType and extracts slot values via keyword
// heuristics. No model call.
type Classifier struct {
	tables lexicon.ClassifierTables
	rules  map[QueryType]lexicon.TypeRule
	log    *zap.Logger
}

// NewClassifier builds a Classifier over the shared lexicon.
func NewClassifier(lex *lexicon.Lexicon, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	rules := make(map[QueryType]lexicon.TypeRule, len(lex.Classifier.Rules))
	for _, r := range lex.Classifier.Rules {
		rules[QueryType(r.Type)] = r
	}
	return &Classifier{tables: lex.Classifier, rules: rules, log: log.Named("classifier")}
}

// #endregion

// #region analyze

// Analyze classifies query and fills slots, missing info, confidence and
// the follow-up template. It never fails.
func (c *Classifier) Analyze(query string) QueryAnalysis {
	lower := strings.ToLower(query)
	qt := c.Classify(lower)
	info := c.extract(lower, qt)
	missing := c.missing(qt, info)

	a := QueryAnalysis{
		OriginalQuery:   query,
		QueryType:       qt,
		ExtractedInfo:   info,
		MissingInfo:     missing,
		ConfidenceScore: c.confidence(qt, info),
		IsComplete:      len(missing) == 0,
	}
	if !a.IsComplete {
		a.SuggestedFollowup = c.followup(qt)
	}
	return a
}

// Classify returns the query type. Identity and greeting phrases are checked
// before any topical rule so personal queries are never reclassified.
func (c *Classifier) Classify(query string) QueryType {
	lower := strings.ToLower(query)
	if containsAny(lower, c.tables.IdentityKeywords) {
		return TypePersonalIdentity
	}
	if containsAny(lower, c.tables.GreetingKeywords) {
		return TypePersonalGreeting
	}
	for _, r := range c.tables.Rules {
		if containsAny(lower, r.Keywords) {
			return QueryType(r.Type)
		}
	}
	return TypeGeneral
}

// #endregion

// #region slots

// extract fills slots for qt, first literal match per list. A panic while
// scanning is logged and yields empty slots.
func (c *Classifier) extract(lower string, qt QueryType) (info map[string]string) {
	info = map[string]string{}
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("slot extraction panicked", zap.String("query_type", string(qt)), zap.String("panic", fmt.Sprint(r)))
			info = map[string]string{}
		}
	}()

	title := cases.Title(language.English)
	for _, list := range c.tables.Slots[string(qt)] {
		if _, ok := info[list.Slot]; ok {
			continue
		}
		for _, v := range list.Values {
			if !strings.Contains(lower, v) {
				continue
			}
			if list.Label != "" {
				info[list.Slot] = list.Label
			} else {
				info[list.Slot] = title.String(v)
			}
			break
		}
	}
	return info
}

func (c *Classifier) missing(qt QueryType, info map[string]string) []string {
	var out []string
	for _, slot := range c.rules[qt].Required {
		if info[slot] == "" {
			out = append(out, slot)
		}
	}
	return out
}

// #endregion

// #region scoring

func (c *Classifier) confidence(qt QueryType, info map[string]string) float64 {
	w := c.tables.DefaultWeight
	if r, ok := c.rules[qt]; ok && r.Weight > 0 {
		w = r.Weight
	}
	return math.Min(1.0, 0.5+0.2*float64(len(info))+w)
}

func (c *Classifier) followup(qt QueryType) string {
	if r, ok := c.rules[qt]; ok && r.Followup != "" {
		return r.Followup
	}
	return c.tables.DefaultFollowup
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
