package main

import (
	"testing"
	"time"
)

func TestWsPingIntervalFromConfig(t *testing.T) {
	config := DefaultConfig()
	if got := wsPingInterval(config); got != 30*time.Second {
		t.Fatalf("unexpected default interval %v", got)
	}
	config.WsPingIntervalSec = 5
	if got := wsPingInterval(config); got != 5*time.Second {
		t.Fatalf("interval knob not applied: %v", got)
	}
	config.WsPingIntervalSec = 0
	if got := wsPingInterval(config); got != defaultWsPingInterval {
		t.Fatalf("zero interval should fall back: %v", got)
	}
	config.WsPingIntervalSec = -1
	if got := wsPingInterval(config); got != defaultWsPingInterval {
		t.Fatalf("negative interval should fall back: %v", got)
	}
}
