package domain

import (
	"context"
	"time"
)

// Stage names the step of an execution.
type Stage string

const (
	StageDryRun    Stage = "dry-run"
	StageConfirm   Stage = "confirm"
	StageAuth      Stage = "authenticate"
	StageBroadcast Stage = "broadcast"
	StageRun       Stage = "run"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageStart EventType = "stage_start"
	EventStageEnd   EventType = "stage_end"
	EventAbort      EventType = "abort"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StageEvent describes one step of a leaf execution.
type StageEvent struct {
	EventBase
	Stage    Stage         `json:"stage"`
	Label    string        `json:"label"`
	Command  string        `json:"command,omitempty"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration,omitempty"`
}

// AbortEvent describes a deliberate stop before the irreversible step.
type AbortEvent struct {
	EventBase
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

// LifecycleHooks defines callbacks for executor observability.
type LifecycleHooks struct {
	OnStageStart func(context.Context, *StageEvent)
	OnStageEnd   func(context.Context, *StageEvent)
	OnAbort      func(context.Context, *AbortEvent)
}
