package similarity

import "context"

// #region config
// Config holds the metric weights and level thresholds.
type Config struct {
	SemanticWeight   float64
	KeywordWeight    float64
	StructuralWeight float64
	ContentWeight    float64

	Excellent float64
	Good      float64
	Fair      float64
}

// DefaultConfig returns the production weights and thresholds.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:   0.4,
		KeywordWeight:    0.3,
		StructuralWeight: 0.2,
		ContentWeight:    0.1,
		Excellent:        0.8,
		Good:             0.6,
		Fair:             0.4,
	}
}

// #endregion

// #region metrics
// Level buckets the overall similarity.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelFair      Level = "fair"
	LevelPoor      Level = "poor"
)

// Metrics is the query-vs-answer comparison for one run. Diagnostic only.
type Metrics struct {
	Semantic   float64 `json:"semantic_similarity"`
	Keyword    float64 `json:"keyword_similarity"`
	Structural float64 `json:"structural_similarity"`
	Content    float64 `json:"content_relevance"`
	Overall    float64 `json:"overall_similarity"`
	Level      Level   `json:"similarity_level"`
}

// #endregion

// Embedder turns texts into vectors for the semantic metric.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
