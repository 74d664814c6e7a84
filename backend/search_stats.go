package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

type SearchStats struct {
	Start          time.Time
	Nodes          int64
	Prunes         int64
	CacheProbes    int64
	CacheHits      int64
	CacheEntries   int64
	TriplesTried   int
	TriplesSkipped int
	PathsFound     int
	BestSum        int
	DepthDurations []time.Duration
}

func logSearchStats(tag string, stats *SearchStats) {
	if stats == nil {
		return
	}
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	} else {
		for _, d := range stats.DepthDurations {
			elapsed += d
		}
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	cacheHitRate := 0.0
	if stats.CacheProbes > 0 {
		cacheHitRate = float64(stats.CacheHits) * 100.0 / float64(stats.CacheProbes)
	}
	pruneRate := 0.0
	if stats.Nodes > 0 {
		pruneRate = float64(stats.Prunes) * 100.0 / float64(stats.Nodes)
	}
	bestSum := "none"
	if stats.BestSum > 0 {
		bestSum = fmt.Sprintf("%d", stats.BestSum)
	}
	parts := make([]string, 0, len(stats.DepthDurations))
	for _, d := range stats.DepthDurations {
		parts = append(parts, fmt.Sprintf("%dms", d.Milliseconds()))
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	fmt.Printf("[solver:%s] t=%dms triples=%d skipped=%d nodes=%d nps=%.0f prunes=%d prune_rate=%.1f%% cache_probe=%d cache_hit=%d cache_hit_rate=%.1f%% cache_entries=%d paths=%d best_sum=%s mem_alloc=%s mem_sys=%s depth_times=[%s]\n",
		tag,
		elapsed.Milliseconds(),
		stats.TriplesTried,
		stats.TriplesSkipped,
		stats.Nodes,
		nps,
		stats.Prunes,
		pruneRate,
		stats.CacheProbes,
		stats.CacheHits,
		cacheHitRate,
		stats.CacheEntries,
		stats.PathsFound,
		bestSum,
		formatBytes(mem.Alloc),
		formatBytes(mem.Sys),
		strings.Join(parts, ","),
	)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
