package retrieval

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// ErrNoIndex is returned when the adapter has no index to query.
var ErrNoIndex = errors.New("no vector index configured")

// #region adapter
// Adapter turns raw index results into deduplicated, thresholded hits.
type Adapter struct {
	index Index
	log   *zap.Logger
}

// NewAdapter creates an Adapter over index.
func NewAdapter(index Index, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{index: index, log: log.Named("retrieval")}
}

// #endregion

// #region search
// Search runs the hybrid strategy:
//  1. scored search (replaced by a plain search without distances on error)
//  2. plain search, always issued
//  3. concatenate, dedupe by exact text, drop below threshold
//  4. stable sort descending, truncate to topK
//
// An error from the plain path is a retrieval failure.
func (a *Adapter) Search(ctx context.Context, query string, topK int, threshold float64) ([]Hit, error) {
	if a.index == nil {
		return nil, ErrNoIndex
	}

	primary, err := a.index.ScoredSearch(ctx, query, topK)
	if err != nil {
		a.log.Warn("scored search failed, using plain search", zap.Error(err))
		plain, perr := a.index.Search(ctx, query, topK)
		if perr != nil {
			return nil, fmt.Errorf("plain search: %w", perr)
		}
		primary = unscored(plain)
	}

	keyword, err := a.index.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	all := append(primary, unscored(keyword)...)
	hits := Filter(all, threshold, DefaultConfig().MaxDist)
	if topK >= 0 && len(hits) > topK {
		hits = hits[:topK]
	}

	a.log.Debug("search complete",
		zap.Int("candidates", len(all)),
		zap.Int("hits", len(hits)),
		zap.Float64("threshold", threshold),
	)
	return hits, nil
}

// #endregion

// #region filter
// Filter dedupes candidates by exact text (first occurrence wins, even when
// that occurrence falls below threshold), converts distances to confidence,
// drops hits under threshold and stable-sorts the rest by confidence
// descending. Empty passages are skipped.
func Filter(cands []Candidate, threshold, maxDist float64) []Hit {
	seen := make(map[string]bool, len(cands))
	var hits []Hit
	for _, c := range cands {
		if c.Passage.Text == "" {
			continue
		}
		if seen[c.Passage.Text] {
			continue
		}
		seen[c.Passage.Text] = true

		conf := confidence(c.Distance, maxDist)
		if conf < threshold {
			continue
		}
		hits = append(hits, Hit{Passage: c.Passage, Confidence: conf})
	}
	slices.SortStableFunc(hits, func(x, y Hit) int {
		return cmp.Compare(y.Confidence, x.Confidence)
	})
	return hits
}

// DistanceToConfidence maps a distance to [0,100]: nil means the index
// gave no score and is treated as maximal confidence.
func DistanceToConfidence(d *float64) float64 {
	return confidence(d, DefaultConfig().MaxDist)
}

func confidence(d *float64, maxDist float64) float64 {
	if d == nil {
		return 100
	}
	c := 100 * (1 - *d/maxDist)
	return min(max(c, 0), 100)
}

func unscored(ps []Passage) []Candidate {
	out := make([]Candidate, len(ps))
	for i, p := range ps {
		out[i] = Candidate{Passage: p}
	}
	return out
}

// #endregion
