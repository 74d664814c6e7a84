package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// SolveController owns at most one running solve at a time and keeps
// the result of the last one for the API to report.
type SolveController struct {
	mu               sync.Mutex
	solving          atomic.Bool
	stopSignal       atomic.Bool
	workerDone       chan struct{}
	job              *solveJob
	exploreEnabled   func() bool
	explorePublisher func(explorePayload)
	progressSink     func(ProgressEvent)
}

type solveJob struct {
	request    SolveRequest
	startedAt  time.Time
	finishedAt time.Time
	events     []ProgressEvent
	solution   Solution
	found      bool
	done       bool
	stopped    bool
	stats      *SearchStats
}

func NewSolveController() *SolveController {
	return &SolveController{}
}

func (sc *SolveController) SetExplorePublisher(enabled func() bool, publisher func(explorePayload)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.exploreEnabled = enabled
	sc.explorePublisher = publisher
}

func (sc *SolveController) SetProgressSink(sink func(ProgressEvent)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.progressSink = sink
}

// StartSolve launches a solve in the background. It refuses while a
// previous solve is still running.
func (sc *SolveController) StartSolve(req SolveRequest) bool {
	if !sc.solving.CompareAndSwap(false, true) {
		return false
	}
	if sc.workerDone != nil {
		<-sc.workerDone
	}
	sc.stopSignal.Store(false)
	done := make(chan struct{})
	sc.workerDone = done
	go func() {
		defer close(done)
		sc.runSolve(req)
		sc.solving.Store(false)
	}()
	return true
}

// Solve runs synchronously; the queue worker uses it. The last
// return reports whether the solve ran at all (false when another
// solve already holds the controller).
func (sc *SolveController) Solve(req SolveRequest) (Solution, bool, bool) {
	if !sc.solving.CompareAndSwap(false, true) {
		return Solution{}, false, false
	}
	if sc.workerDone != nil {
		<-sc.workerDone
		sc.workerDone = nil
	}
	sc.stopSignal.Store(false)
	solution, found := sc.runSolve(req)
	sc.solving.Store(false)
	return solution, found, true
}

func (sc *SolveController) runSolve(req SolveRequest) (Solution, bool) {
	config := GetConfig()
	stats := &SearchStats{Start: time.Now()}
	job := &solveJob{request: req, startedAt: time.Now(), stats: stats}
	sc.mu.Lock()
	sc.job = job
	progressSink := sc.progressSink
	sc.mu.Unlock()

	optimizer := &Optimizer{
		Graph:      moveGraph,
		Config:     config,
		Stats:      stats,
		ShouldStop: func() bool { return sc.stopSignal.Load() },
		OnExplore:  sc.exploreCallback(config),
		OnProgress: func(event ProgressEvent) {
			sc.mu.Lock()
			job.events = append(job.events, event)
			sc.mu.Unlock()
			fmt.Printf("[solver] found solution with sum %d\n", event.Sum)
			if event.Good {
				fmt.Printf("[solver] good solution: %s\n", event.Formatted)
			}
			if progressSink != nil {
				progressSink(event)
			}
		},
	}
	solution, found := optimizer.Optimize(req)

	sc.mu.Lock()
	job.solution = solution
	job.found = found
	job.done = true
	job.stopped = sc.stopSignal.Load()
	job.finishedAt = time.Now()
	sc.mu.Unlock()
	if config.LogSearchStats {
		logSearchStats("solve", stats)
	}
	sc.publishExploreFinal()
	return solution, found
}

// exploreCallback builds the throttled live-exploration hook handed
// to the search, mirroring how ghost boards are published.
func (sc *SolveController) exploreCallback(config Config) func(path []Position, maxDepth int) {
	sc.mu.Lock()
	enabled := sc.exploreEnabled
	publisher := sc.explorePublisher
	sc.mu.Unlock()
	if publisher == nil {
		return nil
	}
	throttle := time.Duration(config.ExploreThrottleMs) * time.Millisecond
	var lastPublish time.Time
	return func(path []Position, maxDepth int) {
		if enabled != nil && !enabled() {
			return
		}
		if throttle > 0 {
			now := time.Now()
			if !lastPublish.IsZero() && now.Sub(lastPublish) < throttle {
				return
			}
			lastPublish = now
		}
		publisher(explorePayloadFromPath(path, maxDepth, true))
	}
}

func (sc *SolveController) publishExploreFinal() {
	sc.mu.Lock()
	publisher := sc.explorePublisher
	sc.mu.Unlock()
	if publisher != nil {
		publisher(explorePayload{Active: false, Final: true})
	}
}

// CacheReport returns the aggregated score-cache counters of the last
// finished solve. ok is false while no finished job is retained.
func (sc *SolveController) CacheReport() (CacheStatsDTO, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.job == nil || !sc.job.done || sc.job.stats == nil {
		return CacheStatsDTO{}, false
	}
	return cacheStatsToDTO(sc.job.stats), true
}

// ClearCacheReport drops the retained job and its stats. It refuses
// while a solve is running, since the worker still writes to them.
func (sc *SolveController) ClearCacheReport() bool {
	if sc.solving.Load() {
		return false
	}
	sc.mu.Lock()
	sc.job = nil
	sc.mu.Unlock()
	return true
}

func (sc *SolveController) RequestStop() {
	sc.stopSignal.Store(true)
}

func (sc *SolveController) IsSolving() bool {
	return sc.solving.Load()
}

func (sc *SolveController) Status() SolveStatusDTO {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	status := SolveStatusDTO{Status: "idle", Config: GetConfig()}
	if sc.job == nil {
		status.Request = requestToDTO(DefaultSolveRequest())
		return status
	}
	job := sc.job
	status.Request = requestToDTO(job.request)
	status.StartedAtMs = job.startedAt.UnixMilli()
	switch {
	case !job.done:
		status.Status = "running"
		status.ElapsedMs = time.Since(job.startedAt).Milliseconds()
	case job.stopped:
		status.Status = "stopped"
		status.ElapsedMs = job.finishedAt.Sub(job.startedAt).Milliseconds()
	default:
		status.Status = "done"
		status.ElapsedMs = job.finishedAt.Sub(job.startedAt).Milliseconds()
	}
	for _, event := range job.events {
		status.Events = append(status.Events, progressToDTO(event))
	}
	if job.done {
		if job.found {
			status.Solution = job.solution.Format()
		} else {
			status.Solution = noSolutionSentinel
		}
	}
	if len(job.events) > 0 {
		status.BestSum = job.events[len(job.events)-1].Sum
	}
	// Stats are only reported once the worker has finished writing them.
	if job.done && job.stats != nil {
		status.Stats = statsToDTO(job.stats)
	}
	return status
}
