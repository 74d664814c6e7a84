package main

import "fmt"

const gridSize = 6

type CellClass int

const (
	ClassA CellClass = iota
	ClassB
	ClassC
)

// gridLayout is the fixed partition of the board into the three weight
// classes. Row 0 is the top rank (displayed as rank 6).
var gridLayout = [gridSize][gridSize]CellClass{
	{ClassA, ClassB, ClassB, ClassC, ClassC, ClassC},
	{ClassA, ClassB, ClassB, ClassC, ClassC, ClassC},
	{ClassA, ClassA, ClassB, ClassB, ClassC, ClassC},
	{ClassA, ClassA, ClassB, ClassB, ClassC, ClassC},
	{ClassA, ClassA, ClassA, ClassB, ClassB, ClassC},
	{ClassA, ClassA, ClassA, ClassB, ClassB, ClassC},
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < gridSize && p.Col < gridSize
}

func (p Position) Class() CellClass {
	return gridLayout[p.Row][p.Col]
}

func (p Position) index() int {
	return p.Row*gridSize + p.Col
}

// Square renders the position in algebraic notation: columns map to
// 'a'..'f' and row 0 is rank 6.
func (p Position) Square() string {
	return fmt.Sprintf("%c%d", 'a'+byte(p.Col), gridSize-p.Row)
}

func ParseSquare(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	col := int(s[0] - 'a')
	rank := int(s[1] - '0')
	pos := Position{Row: gridSize - rank, Col: col}
	if rank < 1 || rank > gridSize || !pos.InBounds() {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return pos, nil
}

func (c CellClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return "?"
	}
}
