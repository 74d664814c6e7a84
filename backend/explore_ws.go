package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// explorePayload is a throttled snapshot of the path the search is
// currently expanding, for clients that want to watch the solver work.
type explorePayload struct {
	Squares  []string `json:"squares,omitempty"`
	Depth    int      `json:"depth,omitempty"`
	MaxDepth int      `json:"max_depth,omitempty"`
	Active   bool     `json:"active"`
	Final    bool     `json:"final,omitempty"`
}

func explorePayloadFromPath(path []Position, maxDepth int, active bool) explorePayload {
	squares := make([]string, len(path))
	for i, p := range path {
		squares[i] = p.Square()
	}
	return explorePayload{
		Squares:  squares,
		Depth:    len(path) - 1,
		MaxDepth: maxDepth,
		Active:   active,
	}
}

type ExploreClient struct {
	hub  *ExploreHub
	conn *websocket.Conn
	send chan []byte
}

type ExploreHub struct {
	mu        sync.Mutex
	clients   map[*ExploreClient]struct{}
	broadcast chan explorePayload
}

func NewExploreHub() *ExploreHub {
	return &ExploreHub{
		clients:   make(map[*ExploreClient]struct{}),
		broadcast: make(chan explorePayload, 32),
	}
}

func (h *ExploreHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			if len(h.clients) == 0 {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "explore", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *ExploreHub) Publish(payload explorePayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *ExploreHub) Register(c *ExploreClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *ExploreHub) Unregister(c *ExploreClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *ExploreHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *ExploreClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveExploreWS(hub *ExploreHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &ExploreClient{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, wsPingInterval(GetConfig())); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
