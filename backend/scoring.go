package main

import (
	"fmt"
	"strings"
)

type Weights struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

func (w Weights) Of(class CellClass) int {
	switch class {
	case ClassA:
		return w.A
	case ClassB:
		return w.B
	default:
		return w.C
	}
}

func (w Weights) Sum() int {
	return w.A + w.B + w.C
}

// scorePath folds a path into its exact score: start at the weight of
// the first cell, then add the next weight on a same-class step and
// multiply by it on a class change.
func scorePath(path []Position, weights Weights) int {
	score := weights.Of(path[0].Class())
	for i := 1; i < len(path); i++ {
		prev := path[i-1].Class()
		curr := path[i].Class()
		if curr == prev {
			score += weights.Of(curr)
		} else {
			score *= weights.Of(curr)
		}
	}
	return score
}

// scorePathCapped is scorePath with an early return once the running
// score exceeds target. Weights are positive, so both fold operators
// are non-decreasing: a score that has passed target can never come
// back down, and the truncated value is still strictly above target.
func scorePathCapped(path []Position, weights Weights, target int) int {
	score := weights.Of(path[0].Class())
	for i := 1; i < len(path); i++ {
		prev := path[i-1].Class()
		curr := path[i].Class()
		if curr == prev {
			score += weights.Of(curr)
		} else {
			score *= weights.Of(curr)
		}
		if score > target {
			return score
		}
	}
	return score
}

// pathKey packs a path into a compact cache key, one byte per cell.
func pathKey(path []Position) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, p := range path {
		b.WriteByte(byte(p.index()))
	}
	return b.String()
}

// FormatPath renders a path in the puzzle's comma-joined algebraic
// notation. The notation is consumed downstream and must stay exact.
func FormatPath(path []Position) string {
	squares := make([]string, len(path))
	for i, p := range path {
		squares[i] = p.Square()
	}
	return strings.Join(squares, ",")
}

func FormatSolution(weights Weights, path1, path2 []Position) string {
	return fmt.Sprintf("%d,%d,%d,%s,%s",
		weights.A, weights.B, weights.C, FormatPath(path1), FormatPath(path2))
}
