package main

import "time"

// noSolutionSentinel is the fixed final line emitted when the pruned
// enumeration space yields no valid triple.
const noSolutionSentinel = "No solution found"

type SolveRequest struct {
	Target int
	Start1 Position
	End1   Position
	Start2 Position
	End2   Position
}

// DefaultSolveRequest is the original puzzle instance: score 2024 on
// both corner-to-corner trips.
func DefaultSolveRequest() SolveRequest {
	return SolveRequest{
		Target: 2024,
		Start1: Position{Row: 5, Col: 0}, // a1
		End1:   Position{Row: 0, Col: 5}, // f6
		Start2: Position{Row: 0, Col: 0}, // a6
		End2:   Position{Row: 5, Col: 5}, // f1
	}
}

type Solution struct {
	Weights Weights
	Path1   []Position
	Path2   []Position
}

func (s Solution) Format() string {
	return FormatSolution(s.Weights, s.Path1, s.Path2)
}

type ProgressEvent struct {
	Sum       int
	Solution  Solution
	Formatted string
	Good      bool
	Elapsed   time.Duration
}

// Optimizer sweeps weight triples, running the path search twice per
// triple, and keeps the minimal-sum triple for which both endpoint
// pairs admit a path scoring exactly the target.
type Optimizer struct {
	Graph      *MoveGraph
	Config     Config
	Stats      *SearchStats
	ShouldStop func() bool
	OnProgress func(ProgressEvent)
	OnExplore  func(path []Position, maxDepth int)
}

// Optimize enumerates triples in increasing A, then B, then C, so the
// A < B < C invariant holds by construction. The sweep does not stop
// at the first hit: it keeps searching its pruned space for a smaller
// sum. Pruning is heuristic — the B break assumes multiplicative
// growth dominates — so completeness is bounded by construction.
func (o *Optimizer) Optimize(req SolveRequest) (Solution, bool) {
	start := time.Now()
	if o.Stats != nil && o.Stats.Start.IsZero() {
		o.Stats.Start = start
	}
	bestSum := 0
	var best Solution
	found := false

	for a := 1; a < o.Config.WeightACeiling; a++ {
		// Safety stop; unreachable with the default ceiling.
		if a > req.Target {
			break
		}
		if o.stopRequested() {
			break
		}
		for b := a + 1; b < o.Config.WeightBCeiling; b++ {
			if a*b > req.Target {
				break
			}
			if o.stopRequested() {
				break
			}
			for c := b + 1; a+b+c < o.Config.WeightSumBudget; c++ {
				if o.stopRequested() {
					break
				}
				weights := Weights{A: a, B: b, C: c}
				if found && weights.Sum() >= bestSum {
					if o.Stats != nil {
						o.Stats.TriplesSkipped++
					}
					continue
				}
				if o.Stats != nil {
					o.Stats.TriplesTried++
				}
				// Fresh session per triple: the score cache must not
				// survive a weight change.
				session := newSearchSession(o.Graph, weights, req.Target, o.Stats)
				session.shouldStop = o.ShouldStop
				session.onExplore = o.OnExplore
				path1, ok := session.FindPath(req.Start1, req.End1, o.Config.SearchMinDepth, o.Config.SearchMaxDepth)
				if !ok {
					continue
				}
				path2, ok := session.FindPath(req.Start2, req.End2, o.Config.SearchMinDepth, o.Config.SearchMaxDepth)
				if !ok {
					continue
				}
				bestSum = weights.Sum()
				best = Solution{Weights: weights, Path1: path1, Path2: path2}
				found = true
				if o.Stats != nil {
					o.Stats.PathsFound += 2
					o.Stats.BestSum = bestSum
				}
				if o.OnProgress != nil {
					event := ProgressEvent{
						Sum:      bestSum,
						Solution: best,
						Elapsed:  time.Since(start),
					}
					if bestSum < o.Config.GoodSumThreshold {
						event.Good = true
					}
					event.Formatted = best.Format()
					o.OnProgress(event)
				}
			}
		}
	}
	return best, found
}

func (o *Optimizer) stopRequested() bool {
	return o.ShouldStop != nil && o.ShouldStop()
}
