package main

import "fmt"

type SolveRequestDTO struct {
	Target int    `json:"target"`
	Start1 string `json:"start1"`
	End1   string `json:"end1"`
	Start2 string `json:"start2"`
	End2   string `json:"end2"`
}

type ProgressEventDTO struct {
	Sum       int    `json:"sum"`
	Weights   [3]int `json:"weights"`
	Path1     string `json:"path1"`
	Path2     string `json:"path2"`
	Formatted string `json:"formatted,omitempty"`
	Good      bool   `json:"good"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type SearchStatsDTO struct {
	Nodes          int64   `json:"nodes"`
	Prunes         int64   `json:"prunes"`
	CacheProbes    int64   `json:"cache_probes"`
	CacheHits      int64   `json:"cache_hits"`
	CacheEntries   int64   `json:"cache_entries"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
	TriplesTried   int     `json:"triples_tried"`
	TriplesSkipped int     `json:"triples_skipped"`
	PathsFound     int     `json:"paths_found"`
	BestSum        int     `json:"best_sum,omitempty"`
	DepthTimesMs   []int64 `json:"depth_times_ms,omitempty"`
}

// CacheStatsDTO is the /api/cache/scores view of the last solve: the
// caches themselves are scoped to one weight triple and die with it,
// so the report aggregates their counters instead of exposing entries.
type CacheStatsDTO struct {
	Probes       int64   `json:"probes"`
	Hits         int64   `json:"hits"`
	Entries      int64   `json:"entries"`
	HitRate      float64 `json:"hit_rate"`
	TriplesTried int     `json:"triples_tried"`
}

type SolveStatusDTO struct {
	Status      string             `json:"status"`
	Request     SolveRequestDTO    `json:"request"`
	StartedAtMs int64              `json:"started_at_ms,omitempty"`
	ElapsedMs   int64              `json:"elapsed_ms,omitempty"`
	BestSum     int                `json:"best_sum,omitempty"`
	Solution    string             `json:"solution,omitempty"`
	Events      []ProgressEventDTO `json:"events,omitempty"`
	Stats       *SearchStatsDTO    `json:"stats,omitempty"`
	Config      Config             `json:"config"`
}

func requestToDTO(req SolveRequest) SolveRequestDTO {
	return SolveRequestDTO{
		Target: req.Target,
		Start1: req.Start1.Square(),
		End1:   req.End1.Square(),
		Start2: req.Start2.Square(),
		End2:   req.End2.Square(),
	}
}

// requestFromDTO fills unset fields from defaults so clients can post
// just a target, or nothing at all for the stock puzzle.
func requestFromDTO(dto SolveRequestDTO, defaults SolveRequest) (SolveRequest, error) {
	req := defaults
	if dto.Target != 0 {
		if dto.Target < 1 {
			return SolveRequest{}, fmt.Errorf("target must be positive")
		}
		req.Target = dto.Target
	}
	squares := []struct {
		raw string
		dst *Position
	}{
		{dto.Start1, &req.Start1},
		{dto.End1, &req.End1},
		{dto.Start2, &req.Start2},
		{dto.End2, &req.End2},
	}
	for _, square := range squares {
		if square.raw == "" {
			continue
		}
		pos, err := ParseSquare(square.raw)
		if err != nil {
			return SolveRequest{}, err
		}
		*square.dst = pos
	}
	return req, nil
}

func progressToDTO(event ProgressEvent) ProgressEventDTO {
	dto := ProgressEventDTO{
		Sum:       event.Sum,
		Weights:   [3]int{event.Solution.Weights.A, event.Solution.Weights.B, event.Solution.Weights.C},
		Path1:     FormatPath(event.Solution.Path1),
		Path2:     FormatPath(event.Solution.Path2),
		Good:      event.Good,
		ElapsedMs: event.Elapsed.Milliseconds(),
	}
	if event.Good {
		dto.Formatted = event.Formatted
	}
	return dto
}

func statsToDTO(stats *SearchStats) *SearchStatsDTO {
	dto := &SearchStatsDTO{
		Nodes:          stats.Nodes,
		Prunes:         stats.Prunes,
		CacheProbes:    stats.CacheProbes,
		CacheHits:      stats.CacheHits,
		CacheEntries:   stats.CacheEntries,
		TriplesTried:   stats.TriplesTried,
		TriplesSkipped: stats.TriplesSkipped,
		PathsFound:     stats.PathsFound,
		BestSum:        stats.BestSum,
	}
	if stats.CacheProbes > 0 {
		dto.CacheHitRate = float64(stats.CacheHits) / float64(stats.CacheProbes)
	}
	for _, d := range stats.DepthDurations {
		dto.DepthTimesMs = append(dto.DepthTimesMs, d.Milliseconds())
	}
	return dto
}

func cacheStatsToDTO(stats *SearchStats) CacheStatsDTO {
	dto := CacheStatsDTO{
		Probes:       stats.CacheProbes,
		Hits:         stats.CacheHits,
		Entries:      stats.CacheEntries,
		TriplesTried: stats.TriplesTried,
	}
	if stats.CacheProbes > 0 {
		dto.HitRate = float64(stats.CacheHits) / float64(stats.CacheProbes)
	}
	return dto
}
