// Package assistant runs one conversational turn: conversation memory in,
// pipeline run, memory and run log out.
package assistant

// #region imports
import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/logger"
	"github.com/kazifarms/hr-assistant/internal/logging"
	"github.com/kazifarms/hr-assistant/internal/pipeline"
	"github.com/kazifarms/hr-assistant/internal/store"
)

// #endregion

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("empty query")

// Processor is the pipeline entry point.
type Processor interface {
	ProcessWithContext(ctx context.Context, query, conversationContext string) pipeline.Result
	Variant() pipeline.Variant
}

// #region service

// Service owns the per-turn bookkeeping around the pipeline. memory and
// runs are optional.
type Service struct {
	pipeline     Processor
	memory       *store.Store
	runs         *sql.DB
	historyLimit int
	log          *zap.Logger
}

// New creates a Service.
func New(p Processor, memory *store.Store, runs *sql.DB, historyLimit int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Service{pipeline: p, memory: memory, runs: runs, historyLimit: historyLimit, log: log.Named("assistant")}
}

// Answer is one turn's outcome.
type Answer struct {
	pipeline.Result
	SessionID string `json:"session_id,omitempty"`
	RunID     string `json:"run_id,omitempty"`
}

// #endregion

// #region ask

// Ask answers query within a session. An empty sessionID starts a new one
// when memory is configured; an unknown one returns store.ErrNotFound.
func (s *Service) Ask(ctx context.Context, sessionID, query string) (Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Answer{}, ErrEmptyQuery
	}

	var convo string
	if s.memory != nil {
		if sessionID == "" {
			id, err := s.memory.StartSession(ctx)
			if err != nil {
				return Answer{}, err
			}
			sessionID = id
		}
		c, err := s.memory.Context(ctx, sessionID, s.historyLimit)
		if err != nil {
			return Answer{}, err
		}
		convo = c
	}

	log := logger.Scoped(ctx, "assistant", s.log)
	start := time.Now()
	res := s.pipeline.ProcessWithContext(ctx, query, convo)
	elapsed := time.Since(start)

	ans := Answer{Result: res, SessionID: sessionID}
	if s.memory != nil {
		if err := s.remember(ctx, sessionID, query, res); err != nil {
			log.Warn("memory write failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	if s.runs != nil {
		id, err := logging.LogRun(s.runs, runEntry(s.pipeline.Variant(), sessionID, query, res, elapsed))
		if err != nil {
			log.Warn("run log write failed", zap.Error(err))
		}
		ans.RunID = id
	}
	if res.FollowupSuggestion != "" {
		log.Debug("followup suggestion", zap.String("followup", res.FollowupSuggestion))
	}
	return ans, nil
}

func (s *Service) remember(ctx context.Context, sessionID, query string, res pipeline.Result) error {
	if err := s.memory.AddMessage(ctx, sessionID, store.RoleUser, query, nil); err != nil {
		return err
	}
	meta := map[string]string{
		"terminal":   string(res.Terminal),
		"confidence": strconv.FormatFloat(res.ConfidenceScore, 'f', 1, 64),
	}
	if res.QueryAnalysis != nil {
		meta["query_type"] = string(res.QueryAnalysis.QueryType)
	}
	return s.memory.AddMessage(ctx, sessionID, store.RoleAssistant, res.FinalResponse, meta)
}

func runEntry(v pipeline.Variant, sessionID, query string, res pipeline.Result, elapsed time.Duration) logging.RunEntry {
	e := logging.RunEntry{
		SessionID:    sessionID,
		Variant:      string(v),
		Query:        query,
		Terminal:     string(res.Terminal),
		MatchType:    string(res.MatchType),
		Fallback:     string(res.FallbackCategory),
		Confidence:   res.ConfidenceScore,
		Sources:      len(res.SourceDocuments),
		Blocked:      res.Blocked,
		ErrorMessage: res.ErrorMessage,
		DurationMS:   elapsed.Milliseconds(),
	}
	if res.QueryAnalysis != nil {
		e.QueryType = string(res.QueryAnalysis.QueryType)
	}
	return e
}

// #endregion

// Memory exposes the conversation store, nil when disabled.
func (s *Service) Memory() *store.Store { return s.memory }
