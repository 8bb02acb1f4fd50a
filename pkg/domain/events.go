package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventNodeLeave EventType = "node_leave"
	EventResult    EventType = "result"
	EventExit      EventType = "exit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Category  string    `json:"category"`
}

// NodeEvent represents entry or exit from a question node.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	// Back is true when the transition was caused by back navigation.
	Back bool `json:"back,omitempty"`
}

// ResultEvent is emitted when a traversal concludes.
type ResultEvent struct {
	EventBase
	NodeID    string   `json:"node_id"`
	Diagnosis string   `json:"diagnosis"`
	Severity  Severity `json:"severity"`
}

// ExitEvent is emitted when a session leaves a tree (back past the root or reset).
type ExitEvent struct {
	EventBase
	Reason string `json:"reason"` // "back" or "reset"
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent)
	OnResult    func(context.Context, *ResultEvent)
	OnExit      func(context.Context, *ExitEvent)
}

// Merge chains two hook sets; h runs before other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: chain(h.OnNodeEnter, other.OnNodeEnter),
		OnNodeLeave: chain(h.OnNodeLeave, other.OnNodeLeave),
		OnResult:    chain(h.OnResult, other.OnResult),
		OnExit:      chain(h.OnExit, other.OnExit),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
