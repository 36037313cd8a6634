// Package valkey stores HR passages in a Valkey/Redis search index and
// serves the hybrid KNN + full-text lookups the retrieval adapter needs.
package valkey

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

// #endregion

// Compile-time check: Index implements retrieval.Index.
var _ retrieval.Index = (*Index)(nil)

// ErrNoEmbedder is returned by vector operations when no Embedder is set.
var ErrNoEmbedder = errors.New("no embedder configured")

// Embedder turns texts into vectors of the index dimension.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// #region config

// Config holds connection and schema settings.
type Config struct {
	Addrs      []string
	Username   string
	Password   string
	Name       string // FT index name
	Prefix     string // hash key prefix
	Dimensions int
}

// ApplyDefaults fills unset schema settings.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "hr:idx"
	}
	if c.Prefix == "" {
		c.Prefix = "hr:doc:"
	}
}

// #endregion

// #region index

// Index is a passage index backed by FT.SEARCH.
type Index struct {
	client   rueidis.Client
	embedder Embedder
	cfg      Config
	log      *zap.Logger
}

// New connects to Valkey. FT.SEARCH parsing expects RESP2 arrays.
func New(cfg Config, embedder Embedder, log *zap.Logger) (*Index, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
		AlwaysRESP2:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return NewWithClient(client, cfg, embedder, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client rueidis.Client, cfg Config, embedder Embedder, log *zap.Logger) *Index {
	cfg.ApplyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Index{client: client, embedder: embedder, cfg: cfg, log: log.Named("valkey")}
}

// Ping checks connectivity.
func (x *Index) Ping(ctx context.Context) error {
	if err := x.client.Do(ctx, x.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (x *Index) Close() {
	x.client.Close()
}

// #endregion

// isRedisErr checks if err is a server error containing substr, ignoring case.
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
