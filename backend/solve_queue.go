package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

type solveTask struct {
	request SolveRequest
	created time.Time
}

type queueEntry struct {
	Key         string
	Request     SolveRequest
	Created     time.Time
	Hits        int
	Solving     bool
	StartedAtMs int64
	Done        bool
	Found       bool
	Solution    string
}

type queueEntryDTO struct {
	ID          string          `json:"id"`
	Request     SolveRequestDTO `json:"request"`
	Hits        int             `json:"hits"`
	Solving     bool            `json:"solving"`
	StartedAtMs int64           `json:"started_at_ms,omitempty"`
	Done        bool            `json:"done"`
	Found       bool            `json:"found"`
	Solution    string          `json:"solution,omitempty"`
}

type queuePayload struct {
	Event        string         `json:"event"`
	Entry        *queueEntryDTO `json:"entry,omitempty"`
	TotalInQueue int            `json:"total_in_queue"`
	UpdatedAt    int64          `json:"updated_at_ms"`
}

type queueResponse struct {
	Queue        []queueEntryDTO `json:"queue"`
	TotalInQueue int             `json:"total_in_queue"`
}

// solveQueue holds solve requests waiting for the controller. Repeat
// submissions of an enqueued request bump its hit count instead of
// queueing a duplicate.
type solveQueue struct {
	mu          sync.Mutex
	queue       []solveTask
	present     map[string]struct{}
	entries     map[string]queueEntry
	order       []string
	hub         *Hub
	stop        atomic.Bool
	limitWarned bool
}

var solveQueueManager = newSolveQueue()

func newSolveQueue() *solveQueue {
	return &solveQueue{
		present: make(map[string]struct{}),
		entries: make(map[string]queueEntry),
	}
}

func (q *solveQueue) SetHub(hub *Hub) {
	q.mu.Lock()
	q.hub = hub
	q.mu.Unlock()
}

// requestKey identifies a solve request for dedup purposes.
func requestKey(req SolveRequest) string {
	return fmt.Sprintf("t%d:%s-%s:%s-%s",
		req.Target,
		req.Start1.Square(), req.End1.Square(),
		req.Start2.Square(), req.End2.Square())
}

func (q *solveQueue) Enqueue(req SolveRequest) bool {
	config := GetConfig()
	if !config.QueueEnabled {
		return false
	}
	key := requestKey(req)
	q.stop.Store(false)
	var payload queuePayload
	q.mu.Lock()
	entry, known := q.entries[key]
	if !known {
		entry = queueEntry{Key: key, Request: req, Created: time.Now()}
		q.order = append(q.order, key)
	}
	entry.Hits++
	q.entries[key] = entry
	if _, queued := q.present[key]; queued {
		payload = q.payloadLocked("task_hit", key)
		q.mu.Unlock()
		q.publish(payload)
		return true
	}
	if config.QueueLimit > 0 && len(q.queue) >= config.QueueLimit {
		if !q.limitWarned {
			fmt.Printf("[solver:queue] queue size %d exceeded limit %d\n", len(q.queue)+1, config.QueueLimit)
			q.limitWarned = true
		}
	}
	q.queue = append(q.queue, solveTask{request: req, created: entry.Created})
	q.present[key] = struct{}{}
	payload = q.payloadLocked("task_added", key)
	q.mu.Unlock()
	q.publish(payload)
	return true
}

func (q *solveQueue) dequeue() (solveTask, string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return solveTask{}, "", false
	}
	task := q.queue[0]
	q.queue = q.queue[1:]
	key := requestKey(task.request)
	delete(q.present, key)
	entry := q.entries[key]
	entry.Solving = true
	entry.StartedAtMs = time.Now().UnixMilli()
	q.entries[key] = entry
	return task, key, true
}

func (q *solveQueue) finish(key string, solution Solution, found bool) {
	q.mu.Lock()
	entry := q.entries[key]
	entry.Solving = false
	entry.Done = true
	entry.Found = found
	if found {
		entry.Solution = solution.Format()
	} else {
		entry.Solution = noSolutionSentinel
	}
	q.entries[key] = entry
	payload := q.payloadLocked("task_done", key)
	q.mu.Unlock()
	q.publish(payload)
}

func (q *solveQueue) payloadLocked(event, key string) queuePayload {
	payload := queuePayload{
		Event:        event,
		TotalInQueue: len(q.queue),
		UpdatedAt:    time.Now().UnixMilli(),
	}
	if entry, ok := q.entries[key]; ok {
		dto := entryToDTO(entry)
		payload.Entry = &dto
	}
	return payload
}

func (q *solveQueue) publish(payload queuePayload) {
	q.mu.Lock()
	hub := q.hub
	q.mu.Unlock()
	if hub != nil {
		hub.PublishQueue(payload)
	}
}

func (q *solveQueue) Snapshot() queueResponse {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]queueEntryDTO, 0, len(q.order))
	for _, key := range q.order {
		out = append(out, entryToDTO(q.entries[key]))
	}
	return queueResponse{Queue: out, TotalInQueue: len(q.queue)}
}

func (q *solveQueue) RequestStop() {
	q.stop.Store(true)
}

func entryToDTO(entry queueEntry) queueEntryDTO {
	return queueEntryDTO{
		ID:          entry.Key,
		Request:     requestToDTO(entry.Request),
		Hits:        entry.Hits,
		Solving:     entry.Solving,
		StartedAtMs: entry.StartedAtMs,
		Done:        entry.Done,
		Found:       entry.Found,
		Solution:    entry.Solution,
	}
}

// queueWorkerCount clamps the configured worker count to [1, cpus].
// With a single controller only one worker makes progress at a time;
// extra workers just wait their turn, so the default stays at one.
func queueWorkerCount(config Config, cpus int) int {
	count := config.QueueWorkers
	if count <= 0 {
		count = 1
	}
	if count > cpus {
		count = cpus
	}
	return count
}

func startSolveQueueWorkers(controller *SolveController, hub *Hub, done <-chan struct{}) {
	config := GetConfig()
	workers := queueWorkerCount(config, runtime.NumCPU())
	for i := 0; i < workers; i++ {
		go solveQueueWorker(controller, hub, done)
	}
}

func solveQueueWorker(controller *SolveController, hub *Hub, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// Paused until the next enqueue clears the stop flag.
			if solveQueueManager.stop.Load() {
				continue
			}
			if controller.IsSolving() {
				continue
			}
			task, key, ok := solveQueueManager.dequeue()
			if !ok {
				continue
			}
			payload := solveQueueManager.payloadSnapshot("task_started", key)
			solveQueueManager.publish(payload)
			solution, found, ran := controller.Solve(task.request)
			if !ran {
				// Lost the controller to a direct API solve; put the
				// task back and retry on a later tick.
				solveQueueManager.requeue(task, key)
				continue
			}
			solveQueueManager.finish(key, solution, found)
			if hub != nil {
				hub.PublishSolution(solutionPayloadFor(solution, found))
				select {
				case hub.broadcastStatus <- controller.Status():
				default:
				}
			}
		}
	}
}

func (q *solveQueue) requeue(task solveTask, key string) {
	q.mu.Lock()
	q.queue = append([]solveTask{task}, q.queue...)
	q.present[key] = struct{}{}
	entry := q.entries[key]
	entry.Solving = false
	entry.StartedAtMs = 0
	q.entries[key] = entry
	q.mu.Unlock()
}

func (q *solveQueue) payloadSnapshot(event, key string) queuePayload {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.payloadLocked(event, key)
}

func solutionPayloadFor(solution Solution, found bool) solutionPayload {
	payload := solutionPayload{Found: found}
	if found {
		payload.Solution = solution.Format()
		payload.BestSum = solution.Weights.Sum()
	} else {
		payload.Solution = noSolutionSentinel
	}
	return payload
}
