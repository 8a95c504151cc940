package tracing

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LLMCall describes one model invocation.
type LLMCall struct {
	ParentID         string
	Model            string
	Input            any
	Output           string
	PromptTokens     int
	CompletionTokens int
	Duration         time.Duration
}

// ToolCall describes one tool invocation.
type ToolCall struct {
	ParentID string
	Name     string
	Input    any
	Output   any
	Duration time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSessionID fixes the session ID instead of generating one.
func WithSessionID(id string) RecorderOption {
	return func(r *Recorder) { r.sessionID = id }
}

// WithSessionMetadata attaches metadata to every flushed session.
func WithSessionMetadata(md map[string]string) RecorderOption {
	return func(r *Recorder) { r.metadata = maps.Clone(md) }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

// Recorder buffers the events of one agent session and uploads them with
// Flush. Framework callbacks translate their lifecycle hooks into the
// RunStarted, LLMCall, ToolCall, RunFinished and Error methods. A Recorder
// is safe for concurrent use.
type Recorder struct {
	ingester Ingester
	name     string
	now      func() time.Time

	sessionID string
	startedAt time.Time
	metadata  map[string]string

	flushMu sync.Mutex

	mu     sync.Mutex
	events []Event
}

// NewRecorder returns a Recorder that flushes sessions named name to ingester.
func NewRecorder(ingester Ingester, name string, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		ingester: ingester,
		name:     name,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sessionID == "" {
		r.sessionID = uuid.NewString()
	}
	r.startedAt = r.now().UTC()
	return r
}

// SessionID returns the ID every flush is sent under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// RunStarted records the start of a run and returns its event ID, to be
// used as ParentID by the events of that run.
func (r *Recorder) RunStarted(name string, input any) string {
	return r.record(Event{
		Type: EventRunStarted,
		Name: name,
		Data: dataOf("input", input),
	})
}

// LLMCall records a model invocation.
func (r *Recorder) LLMCall(call LLMCall) string {
	data := map[string]any{
		"model":             call.Model,
		"output":            call.Output,
		"prompt_tokens":     call.PromptTokens,
		"completion_tokens": call.CompletionTokens,
	}
	if call.Input != nil {
		data["input"] = call.Input
	}
	return r.record(Event{
		Type:       EventLLMCall,
		Name:       call.Model,
		ParentID:   call.ParentID,
		DurationMS: call.Duration.Milliseconds(),
		Data:       data,
	})
}

// ToolCall records a tool invocation.
func (r *Recorder) ToolCall(call ToolCall) string {
	data := map[string]any{}
	if call.Input != nil {
		data["input"] = call.Input
	}
	if call.Output != nil {
		data["output"] = call.Output
	}
	return r.record(Event{
		Type:       EventToolCall,
		Name:       call.Name,
		ParentID:   call.ParentID,
		DurationMS: call.Duration.Milliseconds(),
		Data:       data,
	})
}

// RunFinished records the end of the run started with runID.
func (r *Recorder) RunFinished(runID string, output any) string {
	return r.record(Event{
		Type:     EventRunFinished,
		ParentID: runID,
		Data:     dataOf("output", output),
	})
}

// Error records a failure below parentID. A nil err records nothing and
// returns "".
func (r *Recorder) Error(parentID string, err error) string {
	if err == nil {
		return ""
	}
	return r.record(Event{
		Type:     EventError,
		ParentID: parentID,
		Error:    err.Error(),
	})
}

// Len returns the number of buffered events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Flush uploads the buffered events as one session. With no events it does
// nothing and returns (nil, nil). Events are dropped from the buffer only
// after the gateway accepted them; on failure they stay for the next Flush.
// Events recorded while a flush is in flight are kept for the next one.
func (r *Recorder) Flush(ctx context.Context) (*IngestResult, error) {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	pending := append([]Event(nil), r.events...)
	r.mu.Unlock()

	if len(pending) == 0 {
		return nil, nil
	}

	res, err := r.ingester.Ingest(ctx, Session{
		ID:        r.sessionID,
		Name:      r.name,
		StartedAt: r.startedAt,
		Metadata:  r.metadata,
		Events:    pending,
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.events = append([]Event(nil), r.events[len(pending):]...)
	r.mu.Unlock()

	return res, nil
}

func (r *Recorder) record(e Event) string {
	e.ID = uuid.NewString()
	e.Timestamp = r.now().UTC()

	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()

	return e.ID
}

func dataOf(key string, v any) map[string]any {
	if v == nil {
		return nil
	}
	return map[string]any{key: v}
}
