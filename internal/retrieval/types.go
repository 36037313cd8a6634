package retrieval

import "context"

// #region passage
// Passage is one indexed document chunk.
type Passage struct {
	ID       string            `json:"id,omitempty"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Source returns the passage's "source" metadata tag, if any.
func (p Passage) Source() string {
	return p.Metadata["source"]
}

// Candidate is a raw index result. Distance is nil when the index did not
// report one.
type Candidate struct {
	Passage  Passage
	Distance *float64
}

// Hit is a deduplicated, confidence-scored passage. Confidence is in [0,100].
type Hit struct {
	Passage    Passage `json:"passage"`
	Confidence float64 `json:"confidence"`
}

// #endregion

// #region index
// Index is the vector index collaborator.
type Index interface {
	// ScoredSearch returns up to k candidates with distances.
	ScoredSearch(ctx context.Context, query string, k int) ([]Candidate, error)
	// Search returns up to k passages without distances.
	Search(ctx context.Context, query string, k int) ([]Passage, error)
}

// #endregion

// #region config
// Config holds the result-shaping knobs for Search.
type Config struct {
	TopK      int     // max hits returned
	Threshold float64 // min confidence, 0-100
	MaxDist   float64 // distance mapped to confidence 0
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TopK:      5,
		Threshold: 25,
		MaxDist:   2.0,
	}
}

// #endregion
