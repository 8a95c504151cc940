package tracing

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway/gatewaytest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest(t *testing.T) {
	transport := &gatewaytest.Transport{
		Respond: func(req gateway.Request) (any, error) {
			return map[string]any{"session_id": "s1", "accepted": 1}, nil
		},
	}
	svc := NewService(transport)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	res, err := svc.Ingest(context.Background(), Session{
		ID:     "s1",
		Name:   "agent",
		Events: []Event{{ID: "e1", Type: EventRunStarted, Timestamp: ts}},
	})
	require.NoError(t, err)
	assert.Equal(t, &IngestResult{SessionID: "s1", Accepted: 1}, res)

	call := transport.Last()
	assert.Equal(t, http.MethodPost, call.Request.Method)
	assert.Equal(t, "/api/client/v1/tracing/sessions", call.Request.Path)
	assert.Equal(t, map[string]any{
		"id":     "s1",
		"name":   "agent",
		"events": []any{map[string]any{"id": "e1", "type": "run_started", "timestamp": "2024-05-01T12:00:00Z"}},
	}, call.Body())
}

func TestIngestValidates(t *testing.T) {
	transport := &gatewaytest.Transport{}
	svc := NewService(transport)

	_, err := svc.Ingest(context.Background(), Session{Events: []Event{{ID: "e1"}}})
	assert.ErrorIs(t, err, ErrMissingSessionID)

	_, err = svc.Ingest(context.Background(), Session{ID: "s1"})
	assert.ErrorIs(t, err, ErrNoEvents)

	assert.Empty(t, transport.Calls())
}

type fakeIngester struct {
	mu       sync.Mutex
	sessions []Session
	err      error
}

func (f *fakeIngester) Ingest(ctx context.Context, s Session) (*IngestResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sessions = append(f.sessions, s)
	return &IngestResult{SessionID: s.ID, Accepted: len(s.Events)}, nil
}

func TestRecorderFlush(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	ing := &fakeIngester{}
	rec := NewRecorder(ing, "support-agent",
		WithClock(func() time.Time { return clock }),
		WithSessionMetadata(map[string]string{"env": "test"}),
	)
	_, err := uuid.Parse(rec.SessionID())
	require.NoError(t, err)

	run := rec.RunStarted("answer", "What is 2+2?")
	llm := rec.LLMCall(LLMCall{ParentID: run, Model: "m", Output: "4", PromptTokens: 5, CompletionTokens: 1, Duration: 1500 * time.Millisecond})
	rec.ToolCall(ToolCall{ParentID: run, Name: "calculator", Input: "2+2", Output: 4})
	rec.Error(llm, errors.New("rate limited"))
	assert.Equal(t, "", rec.Error(run, nil))
	rec.RunFinished(run, "4")
	assert.Equal(t, 5, rec.Len())

	res, err := rec.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Accepted)
	assert.Equal(t, 0, rec.Len())

	require.Len(t, ing.sessions, 1)
	s := ing.sessions[0]
	assert.Equal(t, rec.SessionID(), s.ID)
	assert.Equal(t, "support-agent", s.Name)
	assert.Equal(t, map[string]string{"env": "test"}, s.Metadata)
	assert.Equal(t, clock.UTC(), s.StartedAt)

	types := make([]EventType, 0, len(s.Events))
	for _, e := range s.Events {
		types = append(types, e.Type)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, time.UTC, e.Timestamp.Location())
	}
	assert.Equal(t, []EventType{EventRunStarted, EventLLMCall, EventToolCall, EventError, EventRunFinished}, types)

	assert.Equal(t, run, s.Events[0].ID)
	assert.Equal(t, map[string]any{"input": "What is 2+2?"}, s.Events[0].Data)
	assert.Equal(t, run, s.Events[1].ParentID)
	assert.Equal(t, int64(1500), s.Events[1].DurationMS)
	assert.Equal(t, 5, s.Events[1].Data["prompt_tokens"])
	assert.Equal(t, "calculator", s.Events[2].Name)
	assert.Equal(t, llm, s.Events[3].ParentID)
	assert.Equal(t, "rate limited", s.Events[3].Error)
	assert.Equal(t, run, s.Events[4].ParentID)
}

func TestRecorderFlushEmptyIsNoop(t *testing.T) {
	ing := &fakeIngester{}
	rec := NewRecorder(ing, "agent")

	res, err := rec.Flush(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, ing.sessions)
}

func TestRecorderKeepsEventsOnFailure(t *testing.T) {
	ing := &fakeIngester{err: &gateway.TransportError{Message: "connection reset"}}
	rec := NewRecorder(ing, "agent", WithSessionID("fixed"))
	rec.RunStarted("run", nil)

	_, err := rec.Flush(context.Background())
	var te *gateway.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, rec.Len())

	ing.err = nil
	rec.RunFinished("", nil)
	_, err = rec.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Len())
	require.Len(t, ing.sessions, 1)
	assert.Equal(t, "fixed", ing.sessions[0].ID)
	assert.Len(t, ing.sessions[0].Events, 2)
}

func TestRecorderThroughService(t *testing.T) {
	transport := &gatewaytest.Transport{}
	rec := NewRecorder(NewService(transport), "agent")

	rec.RunStarted("run", map[string]any{"q": "hi"})
	_, err := rec.Flush(context.Background())
	require.NoError(t, err)

	body := transport.Last().Body()
	assert.Equal(t, rec.SessionID(), body["id"])
	assert.Len(t, body["events"], 1)
}

func TestRecorderConcurrentUse(t *testing.T) {
	ing := &fakeIngester{}
	rec := NewRecorder(ing, "agent")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.ToolCall(ToolCall{Name: "t"})
			_, _ = rec.Flush(context.Background())
		}()
	}
	wg.Wait()
	_, err := rec.Flush(context.Background())
	require.NoError(t, err)

	total := 0
	for _, s := range ing.sessions {
		total += len(s.Events)
	}
	assert.Equal(t, 20, total)
	assert.Equal(t, 0, rec.Len())
}
