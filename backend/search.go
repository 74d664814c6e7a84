package main

import "time"

// searchSession owns all mutable state of one path search: the score
// cache, the current path buffer and the visited set. A session is
// only valid for a single weight triple; the optimizer builds a fresh
// one per triple, which is what keeps the cache from ever holding
// scores computed under stale weights.
type searchSession struct {
	graph      *MoveGraph
	weights    Weights
	target     int
	cache      map[string]int
	stats      *SearchStats
	shouldStop func() bool
	onExplore  func(path []Position, maxDepth int)

	path    []Position
	visited [gridSize * gridSize]bool
	result  []Position
	stopped bool
}

func newSearchSession(graph *MoveGraph, weights Weights, target int, stats *SearchStats) *searchSession {
	return &searchSession{
		graph:   graph,
		weights: weights,
		target:  target,
		cache:   make(map[string]int),
		stats:   stats,
		path:    make([]Position, 0, gridSize*gridSize),
	}
}

// FindPath looks for a simple knight path from start to end whose
// score equals the session target, deepening the depth bound from
// the configured minimum up to the configured maximum. The depth
// ceiling is a practical cutoff, not a completeness bound: solutions
// needing more moves than the ceiling are never found.
func (s *searchSession) FindPath(start, end Position, minDepth, maxDepth int) ([]Position, bool) {
	for bound := minDepth; bound <= maxDepth; bound++ {
		depthStart := time.Now()
		s.path = s.path[:0]
		s.path = append(s.path, start)
		s.visited = [gridSize * gridSize]bool{}
		s.visited[start.index()] = true
		found := s.dfs(start, end, 0, bound)
		if s.stats != nil {
			s.stats.DepthDurations = append(s.stats.DepthDurations, time.Since(depthStart))
		}
		if s.stopped {
			return nil, false
		}
		if found {
			return s.result, true
		}
	}
	return nil, false
}

func (s *searchSession) dfs(pos, end Position, depth, maxDepth int) bool {
	if s.shouldStop != nil && s.shouldStop() {
		s.stopped = true
		return false
	}
	if depth > maxDepth {
		return false
	}
	if s.stats != nil {
		s.stats.Nodes++
	}
	if s.onExplore != nil {
		s.onExplore(s.path, maxDepth)
	}
	if pos == end {
		if s.cachedScore() == s.target {
			s.result = append([]Position(nil), s.path...)
			return true
		}
		return false
	}
	// Positive weights make the fold monotone, so a partial path that
	// already exceeds the target can never recover; cut it here.
	if s.cachedScore() > s.target {
		if s.stats != nil {
			s.stats.Prunes++
		}
		return false
	}
	for _, next := range s.graph.Neighbors(pos) {
		if s.visited[next.index()] {
			continue
		}
		s.path = append(s.path, next)
		s.visited[next.index()] = true
		found := s.dfs(next, end, depth+1, maxDepth)
		s.visited[next.index()] = false
		s.path = s.path[:len(s.path)-1]
		if found {
			return true
		}
		if s.stopped {
			return false
		}
	}
	return false
}

// cachedScore returns the (target-capped) score of the current path,
// memoized per exact position sequence for the session's lifetime.
func (s *searchSession) cachedScore() int {
	key := pathKey(s.path)
	if s.stats != nil {
		s.stats.CacheProbes++
	}
	if score, ok := s.cache[key]; ok {
		if s.stats != nil {
			s.stats.CacheHits++
		}
		return score
	}
	score := scorePathCapped(s.path, s.weights, s.target)
	s.cache[key] = score
	if s.stats != nil {
		s.stats.CacheEntries++
	}
	return score
}

func (s *searchSession) cacheSize() int {
	return len(s.cache)
}
