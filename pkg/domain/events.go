package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep    EventType = "step"
	EventVerdict EventType = "verdict"
	EventReject  EventType = "reject"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted after a successful δ* step.
type StepEvent struct {
	EventBase
	Index  int      `json:"index"`
	Symbol string   `json:"symbol"`
	From   StateSet `json:"from"`
	To     StateSet `json:"to"`
}

// VerdictEvent is emitted once a word has been fully consumed.
type VerdictEvent struct {
	EventBase
	Word    []string `json:"word"`
	Verdict Verdict  `json:"verdict"`
	Final   StateSet `json:"final"`
}

// RejectEvent is emitted when a step fails with an undefined transition.
type RejectEvent struct {
	EventBase
	Index  int      `json:"index"`
	Symbol string   `json:"symbol"`
	Active StateSet `json:"active"`
	Err    error    `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep    func(context.Context, *StepEvent)
	OnVerdict func(context.Context, *VerdictEvent)
	OnReject  func(context.Context, *RejectEvent)
}
