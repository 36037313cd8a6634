package main

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/assistant"
	"github.com/kazifarms/hr-assistant/internal/classifier"
	"github.com/kazifarms/hr-assistant/internal/codec"
	"github.com/kazifarms/hr-assistant/internal/config"
	"github.com/kazifarms/hr-assistant/internal/fallback"
	"github.com/kazifarms/hr-assistant/internal/guard"
	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/llm"
	"github.com/kazifarms/hr-assistant/internal/logger"
	"github.com/kazifarms/hr-assistant/internal/logging"
	"github.com/kazifarms/hr-assistant/internal/matcher"
	"github.com/kazifarms/hr-assistant/internal/pipeline"
	"github.com/kazifarms/hr-assistant/internal/random"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
	"github.com/kazifarms/hr-assistant/internal/server"
	"github.com/kazifarms/hr-assistant/internal/similarity"
	"github.com/kazifarms/hr-assistant/internal/store"
	"github.com/kazifarms/hr-assistant/internal/valkey"
)

// #endregion

var errModelDisabled = errors.New("generation backend is disabled")

// #region app

// app is the wired process: config, logger, collaborators and the
// assistant service built on them.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	lex    *lexicon.Lexicon
	pipe   *pipeline.Pipeline
	svc    *assistant.Service
	memory *store.Store
	valkey *valkey.Index
	checks map[string]server.Pinger
	closer []func()
}

// loadConfig resolves the config path, applies CLI overrides and returns
// the validated config.
func loadConfig() (config.Config, error) {
	path := rootFlags.config
	if path == "" {
		path = config.FindPath(config.GetEnv())
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if rootFlags.variant != "" {
		cfg.Pipeline.Variant = rootFlags.variant
	}
	if rootFlags.seed != 0 {
		cfg.Pipeline.Seed = rootFlags.seed
	}
	return cfg, cfg.Validate()
}

// newApp wires every component. withMemory opens the SQLite store for
// conversation memory and the run log.
func newApp(withMemory bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, checks: map[string]server.Pinger{}}
	a.closer = append(a.closer, func() { _ = log.Sync() })

	if err := a.build(withMemory); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) build(withMemory bool) error {
	cfg := a.cfg
	lex, err := lexicon.Load(cfg.Pipeline.LexiconPath)
	if err != nil {
		return err
	}
	a.lex = lex

	var rng random.Source = random.System()
	if cfg.Pipeline.Seed != 0 {
		rng = random.New(cfg.Pipeline.Seed)
	}

	var sidecar *codec.Client
	if cfg.Index.Backend == config.BackendCodec || cfg.Generation.Backend == config.BackendCodec ||
		cfg.Embedding.Backend == config.BackendCodec {
		sidecar, err = codec.NewClient(cfg.Codec.Addr)
		if err != nil {
			return err
		}
		a.closer = append(a.closer, func() { _ = sidecar.Close() })
	}

	embedder := a.embedder(sidecar)
	index, err := a.index(sidecar, embedder)
	if err != nil {
		return err
	}

	g, err := guard.NewGuard(lex, rng)
	if err != nil {
		return err
	}
	m, err := matcher.NewMatcher(lex, a.log)
	if err != nil {
		return err
	}
	pipe, err := pipeline.New(pipeline.Deps{
		Guard:      g,
		Classifier: classifier.NewClassifier(lex, a.log),
		Retriever:  retrieval.NewAdapter(index, a.log),
		Matcher:    m,
		Fallback:   fallback.NewPolicy(lex, rng, a.log),
		Completer:  a.completer(sidecar),
		Comparer:   similarity.NewComparer(lex, embedder, similarity.DefaultConfig(), a.log),
		Log:        a.log,
	}, pipeline.Options{
		Variant:   pipeline.Variant(cfg.Pipeline.Variant),
		TopK:      cfg.Pipeline.TopK,
		Threshold: cfg.Pipeline.Threshold(),
	})
	if err != nil {
		return err
	}
	a.pipe = pipe

	if withMemory {
		mem, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		a.closer = append(a.closer, func() { _ = mem.Close() })
		if err := logging.Migrate(mem.DB()); err != nil {
			return err
		}
		a.memory = mem
		a.checks["store"] = dbPinger{mem}
		a.svc = assistant.New(pipe, mem, mem.DB(), cfg.Store.HistoryLimit, a.log)
	} else {
		a.svc = assistant.New(pipe, nil, nil, cfg.Store.HistoryLimit, a.log)
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closer) - 1; i >= 0; i-- {
		a.closer[i]()
	}
}

// #endregion

// #region backends

func (a *app) embedder(sidecar *codec.Client) similarity.Embedder {
	switch a.cfg.Embedding.Backend {
	case config.BackendOpenAI:
		return llm.NewEmbedder(&llm.Config{
			APIKey:         a.cfg.Embedding.APIKey,
			BaseURL:        a.cfg.Embedding.BaseURL,
			EmbeddingModel: a.cfg.Embedding.Model,
			Dimensions:     a.cfg.Embedding.Dimensions,
			Logger:         a.log,
		})
	case config.BackendCodec:
		return sidecar
	}
	return nil
}

// index returns nil for the none backend; the retrieval adapter then fails
// every search with ErrNoIndex.
func (a *app) index(sidecar *codec.Client, embedder similarity.Embedder) (retrieval.Index, error) {
	switch a.cfg.Index.Backend {
	case config.BackendValkey:
		idx, err := valkey.New(valkey.Config{
			Addrs:      a.cfg.Index.Addrs,
			Username:   a.cfg.Index.Username,
			Password:   a.cfg.Index.Password,
			Name:       a.cfg.Index.Name,
			Prefix:     a.cfg.Index.Prefix,
			Dimensions: a.cfg.Index.Dimensions,
		}, embedder, a.log)
		if err != nil {
			return nil, fmt.Errorf("valkey: %w", err)
		}
		a.closer = append(a.closer, idx.Close)
		a.valkey = idx
		a.checks["index"] = idx
		return idx, nil
	case config.BackendCodec:
		return sidecar, nil
	}
	return nil, nil
}

func (a *app) completer(sidecar *codec.Client) pipeline.Completer {
	timeout := time.Duration(a.cfg.Generation.TimeoutSec) * time.Second
	switch a.cfg.Generation.Backend {
	case config.BackendOpenAI:
		return timeoutCompleter{next: llm.NewCompleter(&llm.Config{
			APIKey:       a.cfg.Generation.APIKey,
			BaseURL:      a.cfg.Generation.BaseURL,
			Model:        a.cfg.Generation.Model,
			Temperature:  a.cfg.Generation.Temperature,
			SystemPrompt: a.cfg.Generation.SystemPrompt,
			Logger:       a.log,
		}), timeout: timeout}
	case config.BackendCodec:
		return timeoutCompleter{next: sidecar, timeout: timeout}
	}
	return disabledCompleter{}
}

type timeoutCompleter struct {
	next    pipeline.Completer
	timeout time.Duration
}

func (t timeoutCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Complete(ctx, prompt)
}

// disabledCompleter fails every call, which the pipeline answers from the
// fallback pools.
type disabledCompleter struct{}

func (disabledCompleter) Complete(context.Context, string) (string, error) {
	return "", errModelDisabled
}

type dbPinger struct{ s *store.Store }

func (p dbPinger) Ping(ctx context.Context) error { return p.s.DB().PingContext(ctx) }

// #endregion
