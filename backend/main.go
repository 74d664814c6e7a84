package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

func main() {
	var (
		addr   = flag.String("addr", ":8080", "listen address")
		once   = flag.Bool("once", false, "run a single solve to stdout and exit")
		target = flag.Int("target", 0, "override the solve target (with -once)")
	)
	flag.Parse()

	if *once {
		os.Exit(runOnce(*target))
	}

	controller := NewSolveController()
	hub := NewHub()
	exploreHub := NewExploreHub()
	solveQueueManager.SetHub(hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller.SetExplorePublisher(
		func() bool { return exploreHub.HasClients() },
		func(payload explorePayload) { exploreHub.Publish(payload) },
	)
	controller.SetProgressSink(func(event ProgressEvent) {
		hub.PublishProgress(progressToDTO(event))
	})

	go hub.Run(ctx.Done())
	go exploreHub.Run(ctx.Done())
	startSolveQueueWorkers(controller, hub, ctx.Done())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/solve", func(w http.ResponseWriter, r *http.Request) {
		var payload SolveRequestDTO
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		req, err := requestFromDTO(payload, DefaultSolveRequest())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if GetConfig().QueueEnabled {
			solveQueueManager.Enqueue(req)
			writeJSON(w, http.StatusAccepted, map[string]any{
				"queued":  true,
				"id":      requestKey(req),
				"request": requestToDTO(req),
			})
			return
		}
		if !controller.StartSolve(req) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "solve already running"})
			return
		}
		writeJSON(w, http.StatusAccepted, controller.Status())
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.RequestStop()
		solveQueueManager.RequestStop()
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var payload Config
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		configStore.Update(payload)
		select {
		case hub.broadcastConfig <- GetConfig():
		default:
		}
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Get("/api/cache/scores", func(w http.ResponseWriter, r *http.Request) {
		report, ok := controller.CacheReport()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no finished solve to report"})
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	r.Delete("/api/cache/scores", func(w http.ResponseWriter, r *http.Request) {
		if !controller.ClearCacheReport() {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "solve in progress"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})

	r.Get("/api/queue", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, solveQueueManager.Snapshot())
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/explore", func(w http.ResponseWriter, r *http.Request) {
		serveExploreWS(exploreHub, w, r)
	})

	server := &http.Server{
		Addr:    *addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("solver listening on %s", *addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[solver] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[solver] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[solver] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[solver] forced close failed: %v", closeErr)
		}
	}

	cancel()
	controller.RequestStop()
	solveQueueManager.RequestStop()
	if runErr != nil {
		log.Printf("[solver] exiting after server error: %v", runErr)
	}
}

// runOnce reproduces the original console behavior: one solve,
// progress lines as better sums are found, one final solution line.
func runOnce(targetOverride int) int {
	req := DefaultSolveRequest()
	if targetOverride > 0 {
		req.Target = targetOverride
	}
	config := GetConfig()
	stats := &SearchStats{Start: time.Now()}
	optimizer := &Optimizer{
		Graph:  moveGraph,
		Config: config,
		Stats:  stats,
		OnProgress: func(event ProgressEvent) {
			fmt.Printf("Found solution with sum %d\n", event.Sum)
			if event.Good {
				fmt.Printf("Good solution: %s\n", event.Formatted)
			}
		},
	}
	solution, found := optimizer.Optimize(req)
	if config.LogSearchStats {
		logSearchStats("once", stats)
	}
	if found {
		fmt.Printf("Solution: %s\n", solution.Format())
		return 0
	}
	fmt.Printf("Solution: %s\n", noSolutionSentinel)
	return 1
}

func serveWS(hub *Hub, controller *SolveController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, wsPingInterval(GetConfig())); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[solver] failed to encode response: %v", err)
	}
}
