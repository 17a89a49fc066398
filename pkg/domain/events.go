package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventHopStart       EventType = "hop_start"
	EventHopComplete    EventType = "hop_complete"
	EventArrive         EventType = "arrive"
	EventStatePublished EventType = "state_published"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// HopEvent describes one step of a traversal.
type HopEvent struct {
	EventBase
	From     string        `json:"from"`
	To       string        `json:"to"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// ArrivalEvent describes the outcome of a whole traversal.
type ArrivalEvent struct {
	EventBase
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Position    string `json:"position"`
	Hops        int    `json:"hops"`
	Err         error  `json:"-"`
}

// LifecycleHooks defines callbacks for navigation observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnHopStart       func(context.Context, *HopEvent)
	OnHopComplete    func(context.Context, *HopEvent)
	OnArrive         func(context.Context, *ArrivalEvent)
	OnStatePublished func(context.Context, StateRecord)
}
