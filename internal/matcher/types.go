package matcher

// #region match-type
// MatchType buckets a match score.
type MatchType string

const (
	MatchExact     MatchType = "exact"      // score >= 0.8
	MatchPartial   MatchType = "partial"    // score >= 0.5
	MatchWeak      MatchType = "weak"       // score < 0.5
	MatchNoContent MatchType = "no_content" // no candidates
)

// Bucket thresholds and the reliability floor.
const (
	ExactThreshold    = 0.8
	PartialThreshold  = 0.5
	ReliableThreshold = 0.3
)

// TypeFor returns the bucket for score.
func TypeFor(score float64) MatchType {
	switch {
	case score >= ExactThreshold:
		return MatchExact
	case score >= PartialThreshold:
		return MatchPartial
	default:
		return MatchWeak
	}
}

// #endregion

// #region match-result
// MatchResult is produced fresh per request and never mutated afterwards.
type MatchResult struct {
	Confidence     float64   `json:"confidence"`
	MatchedContent string    `json:"matched_content"`
	MatchType      MatchType `json:"match_type"`
	KeywordsFound  []string  `json:"keywords_found"`
	IsReliable     bool      `json:"is_reliable"`
	Pattern        string    `json:"pattern,omitempty"` // first question pattern the query matched
	Index          int       `json:"index"`             // winning passage, -1 when none
}

// #endregion
