package logging

import "time"

// #region run-entry
// RunEntry is a single row in the run_log table.
type RunEntry struct {
	RunID        string    `json:"run_id"`
	SessionID    string    `json:"session_id,omitempty"`
	Variant      string    `json:"variant"`
	Query        string    `json:"query"`
	QueryType    string    `json:"query_type,omitempty"`
	Terminal     string    `json:"terminal"`
	MatchType    string    `json:"match_type,omitempty"`
	Fallback     string    `json:"fallback,omitempty"` // fallback category, "" when the model answered
	Confidence   float64   `json:"confidence"`
	Sources      int       `json:"sources"`
	Blocked      bool      `json:"blocked"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// #endregion run-entry
