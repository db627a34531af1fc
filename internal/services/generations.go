package services

import "sync"

// generations counts invalidations per cache key. A load that observed an
// older generation must not write its result back to the cache.
type generations struct {
	mu sync.Mutex
	m  map[string]uint64
}

func (g *generations) current(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m[key]
}

func (g *generations) bump(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.m == nil {
		g.m = make(map[string]uint64)
	}
	g.m[key]++
}
