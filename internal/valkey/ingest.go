package valkey

// #region imports
import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

// #endregion

// #region schema

// EnsureIndex creates the FT index if it does not exist yet.
func (x *Index) EnsureIndex(ctx context.Context) error {
	if x.cfg.Dimensions <= 0 {
		return fmt.Errorf("vector dimensions must be positive")
	}
	args := []string{
		x.cfg.Name, "ON", "HASH",
		"PREFIX", "1", x.cfg.Prefix,
		"SCHEMA",
		fieldText, "TEXT",
		fieldSource, "TAG",
		fieldVector, "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(x.cfg.Dimensions),
		"DISTANCE_METRIC", "COSINE",
	}
	err := x.client.Do(ctx, x.client.B().Arbitrary("FT.CREATE").Args(args...).Build()).Error()
	if err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	x.log.Info("index created", zap.String("name", x.cfg.Name), zap.Int("dim", x.cfg.Dimensions))
	return nil
}

// #endregion

// #region put

// Put embeds passages and writes them as hashes. Passages without an ID get
// a random one. Returns the number written.
func (x *Index) Put(ctx context.Context, passages []retrieval.Passage) (int, error) {
	if x.embedder == nil {
		return 0, ErrNoEmbedder
	}
	if len(passages) == 0 {
		return 0, nil
	}
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	vecs, err := x.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed passages: %w", err)
	}
	if len(vecs) != len(passages) {
		return 0, fmt.Errorf("embed passages: got %d vectors for %d passages", len(vecs), len(passages))
	}

	for i, p := range passages {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		meta, err := json.Marshal(p.Metadata)
		if err != nil {
			return i, fmt.Errorf("marshal metadata %s: %w", id, err)
		}
		cmd := x.client.B().Hset().Key(x.cfg.Prefix+id).FieldValue().
			FieldValue(fieldText, p.Text).
			FieldValue(fieldSource, p.Source()).
			FieldValue(fieldMetadata, string(meta)).
			FieldValue(fieldVector, vectorToBytes(vecs[i])).
			Build()
		if err := x.client.Do(ctx, cmd).Error(); err != nil {
			return i, fmt.Errorf("hset %s: %w", id, err)
		}
	}
	x.log.Info("passages stored", zap.Int("count", len(passages)))
	return len(passages), nil
}

// #endregion
