package main

import "testing"

func assertSimpleKnightPath(t *testing.T, path []Position, start, end Position) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("empty path")
	}
	if path[0] != start || path[len(path)-1] != end {
		t.Fatalf("path %s does not connect %s to %s", FormatPath(path), start.Square(), end.Square())
	}
	seen := map[Position]struct{}{}
	for i, pos := range path {
		if !pos.InBounds() {
			t.Fatalf("position %v out of bounds", pos)
		}
		if _, dup := seen[pos]; dup {
			t.Fatalf("position %s repeats in %s", pos.Square(), FormatPath(path))
		}
		seen[pos] = struct{}{}
		if i > 0 && !moveGraph.HasEdge(path[i-1], pos) {
			t.Fatalf("%s -> %s is not an edge", path[i-1].Square(), pos.Square())
		}
	}
}

func TestFindPathDirectHop(t *testing.T) {
	session := newSearchSession(moveGraph, Weights{A: 1, B: 2, C: 3}, 2, nil)
	path, ok := session.FindPath(Position{Row: 5, Col: 0}, Position{Row: 3, Col: 1}, 4, 11)
	if !ok {
		t.Fatalf("expected a path from a1 to b3 with target 2")
	}
	if FormatPath(path) != "a1,b3" {
		t.Fatalf("expected the single-hop path, got %s", FormatPath(path))
	}
}

func TestFindPathResultIsSimpleAndEdgeValid(t *testing.T) {
	start := Position{Row: 5, Col: 0}
	end := Position{Row: 0, Col: 5}
	weights := Weights{A: 1, B: 3, C: 4}
	// Any returned path must satisfy the structural invariants and
	// score exactly the target, whatever the target is.
	for _, target := range []int{8, 12, 36, 64} {
		stats := &SearchStats{}
		session := newSearchSession(moveGraph, weights, target, stats)
		path, ok := session.FindPath(start, end, 4, 11)
		if !ok {
			continue
		}
		assertSimpleKnightPath(t, path, start, end)
		if got := scorePath(path, weights); got != target {
			t.Fatalf("path %s scores %d, want %d", FormatPath(path), got, target)
		}
	}
}

func TestFindPathImpossibleTargetIsNotFound(t *testing.T) {
	// All weights are at least 2, so even the start cell alone scores
	// above 1; the root is pruned immediately at every depth bound.
	stats := &SearchStats{}
	session := newSearchSession(moveGraph, Weights{A: 2, B: 3, C: 4}, 1, stats)
	if _, ok := session.FindPath(Position{Row: 5, Col: 0}, Position{Row: 0, Col: 5}, 4, 11); ok {
		t.Fatalf("expected NotFound for target 1 with weights >= 2")
	}
	if stats.Prunes == 0 {
		t.Fatalf("expected root prunes to be recorded")
	}
}

func TestFindPathHonorsStopSignal(t *testing.T) {
	session := newSearchSession(moveGraph, Weights{A: 1, B: 2, C: 3}, 1<<30, nil)
	session.shouldStop = func() bool { return true }
	if _, ok := session.FindPath(Position{Row: 5, Col: 0}, Position{Row: 0, Col: 5}, 4, 11); ok {
		t.Fatalf("expected NotFound when stopped before searching")
	}
	if !session.stopped {
		t.Fatalf("expected the session to record the stop")
	}
}

func TestFindPathDepthBoundLimitsLength(t *testing.T) {
	start := Position{Row: 5, Col: 0}
	end := Position{Row: 0, Col: 5}
	weights := Weights{A: 1, B: 3, C: 4}
	session := newSearchSession(moveGraph, weights, 36, nil)
	path, ok := session.FindPath(start, end, 4, 11)
	if !ok {
		t.Skip("no path at this target within the depth ceiling")
	}
	if moves := len(path) - 1; moves > 11 {
		t.Fatalf("path uses %d moves, above the depth ceiling", moves)
	}
}
