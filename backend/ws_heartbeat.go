package main

import (
	"time"

	"github.com/gorilla/websocket"
)

const defaultWsPingInterval = 30 * time.Second

// wsPingInterval resolves the configured idle-ping period, falling
// back to the default when the knob is unset or nonsense.
func wsPingInterval(config Config) time.Duration {
	if config.WsPingIntervalSec <= 0 {
		return defaultWsPingInterval
	}
	return time.Duration(config.WsPingIntervalSec) * time.Second
}

// writeWSWithHeartbeat drains send onto the connection and emits a
// ping message whenever the connection has been idle for a full
// interval.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultWsPingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshalMessage(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
