package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// solve-runner drives a solver backend over its HTTP API: it submits
// one solve request, then polls status and relays progress lines
// until the solve finishes.

type runner struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
}

type solveRequestDTO struct {
	Target int    `json:"target"`
	Start1 string `json:"start1,omitempty"`
	End1   string `json:"end1,omitempty"`
	Start2 string `json:"start2,omitempty"`
	End2   string `json:"end2,omitempty"`
}

type progressEventDTO struct {
	Sum       int    `json:"sum"`
	Formatted string `json:"formatted"`
	Good      bool   `json:"good"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type solveStatusDTO struct {
	Status   string             `json:"status"`
	BestSum  int                `json:"best_sum"`
	Solution string             `json:"solution"`
	Events   []progressEventDTO `json:"events"`
}

func main() {
	baseURL := getenv("SOLVER_URL", "http://localhost:8080")
	pollMs := getenvInt("POLL_INTERVAL_MS", 1000)
	target := getenvInt("SOLVE_TARGET", 2024)

	r := &runner{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      baseURL,
		pollInterval: time.Duration(pollMs) * time.Millisecond,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.waitForBackend(ctx); err != nil {
		log.Fatalf("backend not reachable at %s: %v", baseURL, err)
	}

	request := solveRequestDTO{
		Target: target,
		Start1: getenv("SOLVE_START1", ""),
		End1:   getenv("SOLVE_END1", ""),
		Start2: getenv("SOLVE_START2", ""),
		End2:   getenv("SOLVE_END2", ""),
	}
	if err := r.postJSON("/api/solve", request, nil); err != nil {
		log.Fatalf("failed to submit solve: %v", err)
	}
	log.Printf("submitted solve target=%d to %s", target, baseURL)

	reported := 0
	for {
		if !sleepWithContext(ctx, r.pollInterval) {
			log.Printf("interrupted; requesting stop")
			_ = r.postJSON("/api/stop", struct{}{}, nil)
			return
		}
		var status solveStatusDTO
		if err := r.getJSON("/api/status", &status); err != nil {
			log.Printf("status poll failed: %v", err)
			continue
		}
		for ; reported < len(status.Events); reported++ {
			event := status.Events[reported]
			fmt.Printf("Found solution with sum %d\n", event.Sum)
			if event.Good {
				fmt.Printf("Good solution: %s\n", event.Formatted)
			}
		}
		switch status.Status {
		case "done", "stopped":
			fmt.Printf("Solution: %s\n", status.Solution)
			return
		}
	}
}

func (r *runner) waitForBackend(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt < 30; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var pong map[string]bool
		lastErr = r.getJSON("/api/ping", &pong)
		if lastErr == nil {
			return nil
		}
		if !sleepWithContext(ctx, time.Second) {
			return ctx.Err()
		}
	}
	return lastErr
}

func (r *runner) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (r *runner) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
