package random

// #region imports
import (
	"math/rand/v2"
	"sync"
)

// #endregion

// #region source

// Source picks indices for pooled response selection.
type Source interface {
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
}

// Seeded is a reproducible Source safe for concurrent use.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Seeded source. The same seed yields the same sequence.
func New(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

type system struct{}

func (system) IntN(n int) int { return rand.IntN(n) }

// System returns a Source backed by the runtime's global generator.
func System() Source { return system{} }

type zero struct{}

func (zero) IntN(int) int { return 0 }

// Zero always returns index 0. Used by tests that want the first pool entry.
var Zero Source = zero{}

// #endregion

// #region helpers

// Choice returns one element of items, or "" when items is empty.
func Choice(src Source, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[src.IntN(len(items))]
}

// Sample returns k distinct elements of items in draw order (partial
// Fisher-Yates over a copy). k is clamped to len(items).
func Sample(src Source, items []string, k int) []string {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return nil
	}
	pool := append([]string(nil), items...)
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// #endregion
