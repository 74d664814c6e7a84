package main

import (
	"encoding/json"
	"sync"
)

type Hub struct {
	mu                sync.Mutex
	clients           map[*Client]struct{}
	broadcastStatus   chan SolveStatusDTO
	broadcastProgress chan ProgressEventDTO
	broadcastSolution chan solutionPayload
	broadcastQueue    chan queuePayload
	broadcastConfig   chan Config
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type solutionPayload struct {
	Found    bool   `json:"found"`
	Solution string `json:"solution"`
	BestSum  int    `json:"best_sum,omitempty"`
	Stopped  bool   `json:"stopped,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:           make(map[*Client]struct{}),
		broadcastStatus:   make(chan SolveStatusDTO, 16),
		broadcastProgress: make(chan ProgressEventDTO, 32),
		broadcastSolution: make(chan solutionPayload, 8),
		broadcastQueue:    make(chan queuePayload, 32),
		broadcastConfig:   make(chan Config, 8),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastStatus:
			h.broadcast("status", mustMarshal(payload))
		case payload := <-h.broadcastProgress:
			h.broadcast("progress", mustMarshal(payload))
		case payload := <-h.broadcastSolution:
			h.broadcast("solution", mustMarshal(payload))
		case payload := <-h.broadcastQueue:
			h.broadcast("queue", mustMarshal(payload))
		case payload := <-h.broadcastConfig:
			h.broadcast("config", mustMarshal(payload))
		}
	}
}

func (h *Hub) broadcast(msgType string, payload json.RawMessage) {
	h.mu.Lock()
	for client := range h.clients {
		client.sendJSON(wsMessage{Type: msgType, Payload: payload})
	}
	h.mu.Unlock()
}

func (h *Hub) PublishProgress(payload ProgressEventDTO) {
	select {
	case h.broadcastProgress <- payload:
	default:
	}
}

func (h *Hub) PublishQueue(payload queuePayload) {
	select {
	case h.broadcastQueue <- payload:
	default:
	}
}

func (h *Hub) PublishSolution(payload solutionPayload) {
	select {
	case h.broadcastSolution <- payload:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshalMessage(msg wsMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		return []byte(`{}`)
	}
	return data
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return data
}
