package tracing

import "time"

// EventType classifies a recorded event.
type EventType string

const (
	EventRunStarted  EventType = "run_started"
	EventLLMCall     EventType = "llm_call"
	EventToolCall    EventType = "tool_call"
	EventRunFinished EventType = "run_finished"
	EventError       EventType = "error"
)

// Event is one step of an agent run.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Name       string         `json:"name,omitempty"`
	ParentID   string         `json:"parent_id,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Session is the payload of POST /tracing/sessions: a batch of events that
// belong to one logical execution.
type Session struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	StartedAt time.Time         `json:"started_at,omitzero"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Events    []Event           `json:"events"`
}

// IngestResult is the gateway's acknowledgement of a session.
type IngestResult struct {
	SessionID string `json:"session_id"`
	Accepted  int    `json:"accepted"`
}
