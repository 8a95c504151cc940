package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
)

type sessionRecord struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text"`
	StartedAt time.Time `gorm:"index"`
	Metadata  *string   `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string { return "tracing_sessions" }

type eventRecord struct {
	ID         string    `gorm:"primaryKey;type:text"`
	SessionID  string    `gorm:"index;type:text;not null"`
	Type       string    `gorm:"type:text;not null"`
	Name       string    `gorm:"type:text"`
	ParentID   string    `gorm:"type:text"`
	Timestamp  time.Time `gorm:"column:occurred_at;index"`
	DurationMS int64
	Data       *string `gorm:"type:jsonb"`
	Error      string  `gorm:"type:text"`
}

func (eventRecord) TableName() string { return "tracing_events" }

func toRecords(session tracing.Session) (sessionRecord, []eventRecord, error) {
	meta, err := jsonColumn(session.Metadata)
	if err != nil {
		return sessionRecord{}, nil, fmt.Errorf("postgres: session metadata: %w", err)
	}
	rec := sessionRecord{
		ID:        session.ID,
		Name:      session.Name,
		StartedAt: session.StartedAt,
		Metadata:  meta,
	}

	events := make([]eventRecord, 0, len(session.Events))
	for i, e := range session.Events {
		data, err := jsonColumn(e.Data)
		if err != nil {
			return sessionRecord{}, nil, fmt.Errorf("postgres: event [%d] data: %w", i, err)
		}
		events = append(events, eventRecord{
			ID:         e.ID,
			SessionID:  session.ID,
			Type:       string(e.Type),
			Name:       e.Name,
			ParentID:   e.ParentID,
			Timestamp:  e.Timestamp,
			DurationMS: e.DurationMS,
			Data:       data,
			Error:      e.Error,
		})
	}
	return rec, events, nil
}

func fromRecords(rec sessionRecord, events []eventRecord) (*tracing.Session, error) {
	session := &tracing.Session{
		ID:     rec.ID,
		Name:   rec.Name,
		Events: make([]tracing.Event, 0, len(events)),
	}
	if !rec.StartedAt.IsZero() {
		session.StartedAt = rec.StartedAt.UTC()
	}
	if rec.Metadata != nil {
		if err := json.Unmarshal([]byte(*rec.Metadata), &session.Metadata); err != nil {
			return nil, fmt.Errorf("postgres: session metadata: %w", err)
		}
	}

	for _, e := range events {
		ev := tracing.Event{
			ID:         e.ID,
			Type:       tracing.EventType(e.Type),
			Name:       e.Name,
			ParentID:   e.ParentID,
			Timestamp:  e.Timestamp.UTC(),
			DurationMS: e.DurationMS,
			Error:      e.Error,
		}
		if e.Data != nil {
			if err := json.Unmarshal([]byte(*e.Data), &ev.Data); err != nil {
				return nil, fmt.Errorf("postgres: event %s data: %w", e.ID, err)
			}
		}
		session.Events = append(session.Events, ev)
	}
	return session, nil
}

// jsonColumn encodes v for a nullable jsonb column. Empty maps become NULL.
func jsonColumn[M ~map[string]V, V any](v M) (*string, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
