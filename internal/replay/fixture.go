package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Config      FixtureConfig `json:"config"`
	Cases       []Case        `json:"cases"`
}

// FixtureConfig pins the pipeline knobs for a replay run.
type FixtureConfig struct {
	Variant   string  `json:"variant"`
	Seed      uint64  `json:"seed"`
	TopK      int     `json:"top_k"`
	Threshold float64 `json:"threshold"`
}

// FixturePassage is one recorded index result. A nil distance means the
// index returned the passage unscored.
type FixturePassage struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Distance *float64          `json:"distance,omitempty"`
}

// Case is one recorded query with the collaborator outputs it saw.
type Case struct {
	ID                  string           `json:"id"`
	Query               string           `json:"query"`
	ConversationContext string           `json:"conversation_context,omitempty"`
	Passages            []FixturePassage `json:"passages"`
	SearchError         string           `json:"search_error,omitempty"`
	Completion          string           `json:"completion"`
	CompletionError     string           `json:"completion_error,omitempty"`
	Expected            Expected         `json:"expected"`
}

// Expected lists the outcome fields checked for a case. Empty fields are
// not checked.
type Expected struct {
	Terminal         string `json:"terminal,omitempty"`
	MatchType        string `json:"match_type,omitempty"`
	QueryType        string `json:"query_type,omitempty"`
	FallbackCategory string `json:"fallback_category,omitempty"`
	Blocked          *bool  `json:"blocked,omitempty"`
	ResponseContains string `json:"response_contains,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i, c := range f.Cases {
		if c.ID == "" {
			f.Cases[i].ID = fmt.Sprintf("case-%d", i+1)
		}
	}
	return &f, nil
}

// Candidates converts the recorded passages to index candidates.
func (c *Case) Candidates() []retrieval.Candidate {
	out := make([]retrieval.Candidate, len(c.Passages))
	for i, p := range c.Passages {
		out[i] = retrieval.Candidate{
			Passage:  retrieval.Passage{ID: p.ID, Text: p.Text, Metadata: p.Metadata},
			Distance: p.Distance,
		}
	}
	return out
}

// #endregion fixture-loader
