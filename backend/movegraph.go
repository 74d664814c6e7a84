package main

// knightDeltas fixes the neighbor enumeration order; search results
// depend on it, so it must not be reordered.
var knightDeltas = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

// MoveGraph precomputes, for every cell, the in-bounds knight
// destinations. Built once at startup and never mutated.
type MoveGraph struct {
	neighbors [gridSize * gridSize][]Position
}

func NewMoveGraph() *MoveGraph {
	g := &MoveGraph{}
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			from := Position{Row: row, Col: col}
			moves := make([]Position, 0, len(knightDeltas))
			for _, delta := range knightDeltas {
				to := Position{Row: row + delta[0], Col: col + delta[1]}
				if to.InBounds() {
					moves = append(moves, to)
				}
			}
			g.neighbors[from.index()] = moves
		}
	}
	return g
}

func (g *MoveGraph) Neighbors(p Position) []Position {
	return g.neighbors[p.index()]
}

func (g *MoveGraph) HasEdge(from, to Position) bool {
	for _, next := range g.neighbors[from.index()] {
		if next == to {
			return true
		}
	}
	return false
}

var moveGraph = NewMoveGraph()
