package main

import "testing"

func TestGridLayoutClassCounts(t *testing.T) {
	counts := map[CellClass]int{}
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			counts[Position{Row: row, Col: col}.Class()]++
		}
	}
	if counts[ClassA] != 12 || counts[ClassB] != 12 || counts[ClassC] != 12 {
		t.Fatalf("unexpected class partition: A=%d B=%d C=%d", counts[ClassA], counts[ClassB], counts[ClassC])
	}
}

func TestGridLayoutSpotChecks(t *testing.T) {
	cases := []struct {
		pos  Position
		want CellClass
	}{
		{Position{Row: 0, Col: 0}, ClassA},
		{Position{Row: 0, Col: 5}, ClassC},
		{Position{Row: 2, Col: 2}, ClassB},
		{Position{Row: 5, Col: 0}, ClassA},
		{Position{Row: 5, Col: 5}, ClassC},
		{Position{Row: 4, Col: 3}, ClassB},
	}
	for _, tc := range cases {
		if got := tc.pos.Class(); got != tc.want {
			t.Fatalf("class at %v = %s, want %s", tc.pos, got, tc.want)
		}
	}
}

func TestSquareNotation(t *testing.T) {
	if got := (Position{Row: 5, Col: 0}).Square(); got != "a1" {
		t.Fatalf("expected a1, got %q", got)
	}
	if got := (Position{Row: 0, Col: 5}).Square(); got != "f6" {
		t.Fatalf("expected f6, got %q", got)
	}
}

func TestFormatPath(t *testing.T) {
	if got := FormatPath([]Position{{Row: 5, Col: 0}}); got != "a1" {
		t.Fatalf("expected a1, got %q", got)
	}
	if got := FormatPath([]Position{{Row: 0, Col: 5}}); got != "f6" {
		t.Fatalf("expected f6, got %q", got)
	}
	if got := FormatPath([]Position{{Row: 5, Col: 0}, {Row: 3, Col: 1}}); got != "a1,b3" {
		t.Fatalf("expected a1,b3, got %q", got)
	}
}

func TestFormatSolution(t *testing.T) {
	weights := Weights{A: 1, B: 2, C: 3}
	path1 := []Position{{Row: 5, Col: 0}, {Row: 3, Col: 1}}
	path2 := []Position{{Row: 0, Col: 0}, {Row: 2, Col: 1}}
	got := FormatSolution(weights, path1, path2)
	if got != "1,2,3,a1,b3,a6,b4" {
		t.Fatalf("unexpected solution string %q", got)
	}
}

func TestParseSquareRoundTrip(t *testing.T) {
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			pos := Position{Row: row, Col: col}
			parsed, err := ParseSquare(pos.Square())
			if err != nil {
				t.Fatalf("failed to parse %q: %v", pos.Square(), err)
			}
			if parsed != pos {
				t.Fatalf("round trip of %v yielded %v", pos, parsed)
			}
		}
	}
}

func TestParseSquareRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "a", "a0", "a7", "g1", "11", "a1b"} {
		if _, err := ParseSquare(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
