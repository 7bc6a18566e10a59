package base

import (
	"sync"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"
)

// AnalysisCache memoizes one cross-entity analysis per parse tree. The entry
// is computed on first query and lives until the lint run over that tree
// invalidates it.
type AnalysisCache struct {
	entries   sync.Map // *sitter.Tree -> *analysisEntry
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type analysisEntry struct {
	once  sync.Once
	value any
}

// NewAnalysisCache creates an empty cache.
func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{}
}

// GetOrCompute returns the analysis for tree, running compute at most once.
func (c *AnalysisCache) GetOrCompute(tree *sitter.Tree, compute func() any) any {
	actual, loaded := c.entries.LoadOrStore(tree, &analysisEntry{})
	entry := actual.(*analysisEntry)
	if loaded {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	entry.once.Do(func() {
		entry.value = compute()
	})
	return entry.value
}

// Invalidate drops the analysis of tree. Called when its run ends.
func (c *AnalysisCache) Invalidate(tree *sitter.Tree) {
	if _, ok := c.entries.LoadAndDelete(tree); ok {
		c.evictions.Add(1)
	}
}

// Len counts live entries.
func (c *AnalysisCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stats returns cache statistics
func (c *AnalysisCache) Stats() map[string]int64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	return map[string]int64{
		"hits":      hits,
		"misses":    misses,
		"evictions": c.evictions.Load(),
		"hit_rate":  hits * 100 / (hits + misses + 1),
	}
}
