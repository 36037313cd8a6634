package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// #region validate

// ValidateRelevance applies the ordered answer checks. Earlier rules win:
// keyword coverage, generic non-answers and minimum length reject; grounding
// phrases and concrete figures accept; rambling rejects; otherwise accept
// when some keyword matched and the answer has substance.
func (m *Matcher) ValidateRelevance(query, answer, sourceContext string) bool {
	keywords := m.ExtractKeywords(query)
	lower := strings.ToLower(answer)

	matched := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matched++
		}
	}
	if len(keywords) > 0 && float64(matched) < 0.3*float64(len(keywords)) {
		return false
	}

	if containsAny(lower, m.tables.GenericPhrases) {
		return false
	}

	n := utf8.RuneCountInString(strings.TrimSpace(answer))
	if n < 20 {
		return false
	}

	if containsAny(lower, m.tables.ContentIndicators) {
		return true
	}

	if strings.IndexFunc(answer, unicode.IsDigit) >= 0 ||
		strings.Contains(lower, "bdt") || strings.Contains(lower, "taka") ||
		strings.Contains(answer, "%") || strings.Contains(lower, "percent") {
		return true
	}

	if n > 2000 {
		return false
	}
	return matched > 0 && n >= 50
}

// IsGeneric reports whether answer contains a generic non-answer phrase.
func (m *Matcher) IsGeneric(answer string) bool {
	return containsAny(strings.ToLower(answer), m.tables.GenericPhrases)
}

// #endregion
