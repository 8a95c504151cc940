package postgres

import (
	"testing"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() tracing.Session {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return tracing.Session{
		ID:        "s1",
		Name:      "agent",
		StartedAt: ts,
		Metadata:  map[string]string{"env": "test"},
		Events: []tracing.Event{
			{ID: "e1", Type: tracing.EventRunStarted, Name: "agent", Timestamp: ts, Data: map[string]any{"input": "hi"}},
			{ID: "e2", Type: tracing.EventLLMCall, ParentID: "e1", Timestamp: ts.Add(time.Second), DurationMS: 250},
			{ID: "e3", Type: tracing.EventError, ParentID: "e1", Timestamp: ts.Add(2 * time.Second), Error: "boom"},
		},
	}
}

func TestToRecords(t *testing.T) {
	rec, events, err := toRecords(sampleSession())
	require.NoError(t, err)

	assert.Equal(t, "s1", rec.ID)
	require.NotNil(t, rec.Metadata)
	assert.JSONEq(t, `{"env":"test"}`, *rec.Metadata)

	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, "s1", e.SessionID)
	}
	require.NotNil(t, events[0].Data)
	assert.JSONEq(t, `{"input":"hi"}`, *events[0].Data)
	assert.Nil(t, events[1].Data)
	assert.Equal(t, int64(250), events[1].DurationMS)
	assert.Equal(t, "llm_call", events[1].Type)
}

func TestRecordsRoundTrip(t *testing.T) {
	want := sampleSession()
	rec, events, err := toRecords(want)
	require.NoError(t, err)

	got, err := fromRecords(rec, events)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestToRecordsRejectsUnencodableData(t *testing.T) {
	s := sampleSession()
	s.Events[1].Data = map[string]any{"fn": func() {}}

	_, _, err := toRecords(s)
	assert.ErrorContains(t, err, "event [1] data")
}

func TestFromRecordsBadJSON(t *testing.T) {
	bad := "{"
	_, err := fromRecords(sessionRecord{ID: "s1", Metadata: &bad}, nil)
	assert.Error(t, err)
}

func TestJSONColumnEmpty(t *testing.T) {
	v, err := jsonColumn(map[string]string{})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_SSLMODE", "")
	t.Setenv("POSTGRES_AUTO_MIGRATE", "true")

	cfg := NewConfig()
	assert.Equal(t, "db", cfg.Connection.Host)
	assert.Equal(t, "5432", cfg.Connection.Port)
	assert.Equal(t, "disable", cfg.Connection.SSLMode)
	assert.True(t, cfg.AutoMigrate)
}
