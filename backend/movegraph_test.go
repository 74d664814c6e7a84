package main

import "testing"

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func isKnightMove(from, to Position) bool {
	dr := abs(from.Row - to.Row)
	dc := abs(from.Col - to.Col)
	return (dr == 2 && dc == 1) || (dr == 1 && dc == 2)
}

func TestMoveGraphCornerNeighbors(t *testing.T) {
	got := moveGraph.Neighbors(Position{Row: 0, Col: 0})
	want := map[Position]struct{}{
		{Row: 1, Col: 2}: {},
		{Row: 2, Col: 1}: {},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbors from a6, got %d", len(want), len(got))
	}
	for _, pos := range got {
		if _, ok := want[pos]; !ok {
			t.Fatalf("unexpected neighbor %v from a6", pos)
		}
	}
}

func TestMoveGraphCenterHasEightNeighbors(t *testing.T) {
	if got := moveGraph.Neighbors(Position{Row: 2, Col: 2}); len(got) != 8 {
		t.Fatalf("expected 8 neighbors from the center, got %d", len(got))
	}
}

func TestMoveGraphNeighborsAreExactKnightMoves(t *testing.T) {
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			from := Position{Row: row, Col: col}
			seen := map[Position]struct{}{}
			for _, to := range moveGraph.Neighbors(from) {
				if !to.InBounds() {
					t.Fatalf("out-of-bounds neighbor %v from %v", to, from)
				}
				if !isKnightMove(from, to) {
					t.Fatalf("%v -> %v is not a knight move", from, to)
				}
				if _, dup := seen[to]; dup {
					t.Fatalf("duplicate neighbor %v from %v", to, from)
				}
				seen[to] = struct{}{}
			}
			// Every in-bounds knight destination must be listed.
			for dr := -2; dr <= 2; dr++ {
				for dc := -2; dc <= 2; dc++ {
					to := Position{Row: row + dr, Col: col + dc}
					if !to.InBounds() || !isKnightMove(from, to) {
						continue
					}
					if _, ok := seen[to]; !ok {
						t.Fatalf("missing neighbor %v from %v", to, from)
					}
				}
			}
		}
	}
}

func TestMoveGraphIsSymmetric(t *testing.T) {
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			from := Position{Row: row, Col: col}
			for _, to := range moveGraph.Neighbors(from) {
				if !moveGraph.HasEdge(to, from) {
					t.Fatalf("edge %v -> %v has no reverse", from, to)
				}
			}
		}
	}
}
