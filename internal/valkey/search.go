package valkey

// #region imports
import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

// #endregion

// Hash field names.
const (
	fieldText     = "text"
	fieldSource   = "source"
	fieldMetadata = "metadata"
	fieldVector   = "vector"
	fieldScore    = "__vector_score"
)

// #region knn

// ScoredSearch embeds query and runs a KNN search. Distances are cosine
// distances in [0,2].
func (x *Index) ScoredSearch(ctx context.Context, query string, k int) ([]retrieval.Candidate, error) {
	if x.embedder == nil {
		return nil, ErrNoEmbedder
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}
	vecs, err := x.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("embed query: empty vector")
	}

	args := []string{
		x.cfg.Name,
		fmt.Sprintf("*=>[KNN %d @%s $BLOB]", k, fieldVector),
		"RETURN", "4", fieldText, fieldSource, fieldMetadata, fieldScore,
		"PARAMS", "2", "BLOB", vectorToBytes(vecs[0]),
		"DIALECT", "2",
	}
	raw, err := x.client.Do(ctx, x.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()).ToArray()
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	entries, err := x.parse(raw)
	if err != nil {
		return nil, err
	}
	out := make([]retrieval.Candidate, 0, len(entries))
	for _, e := range entries {
		c := retrieval.Candidate{Passage: e.passage}
		if e.score != "" {
			if d, err := strconv.ParseFloat(e.score, 64); err == nil {
				c.Distance = &d
			}
		}
		out = append(out, c)
	}
	x.log.Debug("knn search", zap.Int("k", k), zap.Int("results", len(out)))
	return out, nil
}

// #endregion

// #region text

// Search runs a full-text match on the passage text. Results carry no
// distance.
func (x *Index) Search(ctx context.Context, query string, k int) ([]retrieval.Passage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}
	terms := strings.Fields(escapeQuery(query))
	if len(terms) == 0 {
		return nil, nil
	}
	args := []string{
		x.cfg.Name,
		fmt.Sprintf("@%s:(%s)", fieldText, strings.Join(terms, "|")),
		"RETURN", "3", fieldText, fieldSource, fieldMetadata,
		"LIMIT", "0", strconv.Itoa(k),
		"DIALECT", "2",
	}
	raw, err := x.client.Do(ctx, x.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()).ToArray()
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	entries, err := x.parse(raw)
	if err != nil {
		return nil, err
	}
	out := make([]retrieval.Passage, len(entries))
	for i, e := range entries {
		out[i] = e.passage
	}
	return out, nil
}

// #endregion

// #region parse

type entry struct {
	passage retrieval.Passage
	score   string
}

// parse reads a 2-stride reply: [total, key1, fields1, key2, fields2, ...].
func (x *Index) parse(raw []rueidis.RedisMessage) ([]entry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	out := make([]entry, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		arr, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		fields := fieldPairs(arr)
		p := retrieval.Passage{
			ID:   strings.TrimPrefix(key, x.cfg.Prefix),
			Text: fields[fieldText],
		}
		if m := fields[fieldMetadata]; m != "" {
			if err := json.Unmarshal([]byte(m), &p.Metadata); err != nil {
				x.log.Warn("bad metadata", zap.String("key", key), zap.Error(err))
			}
		}
		if src := fields[fieldSource]; src != "" {
			if p.Metadata == nil {
				p.Metadata = map[string]string{}
			}
			p.Metadata["source"] = src
		}
		out = append(out, entry{passage: p, score: fields[fieldScore]})
	}
	return out, nil
}

func fieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// #endregion

// #region helpers

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// escapeQuery neutralises query-syntax characters so user text is matched
// literally.
func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, ` `,
	`'`, ` `,
	`"`, ` `,
	`@`, ` `,
	`{`, ` `,
	`}`, ` `,
	`(`, ` `,
	`)`, ` `,
	`|`, ` `,
	`-`, ` `,
	`~`, ` `,
	`*`, ` `,
	`%`, ` `,
	`?`, ` `,
	`!`, ` `,
	`,`, ` `,
	`.`, ` `,
	`:`, ` `,
	`;`, ` `,
	`[`, ` `,
	`]`, ` `,
	`$`, ` `,
	`^`, ` `,
	`<`, ` `,
	`>`, ` `,
	`=`, ` `,
	`+`, ` `,
	`/`, ` `,
	`#`, ` `,
	`&`, ` `,
	"`", ` `,
)

// #endregion
