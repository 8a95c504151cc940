package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSessionNotFound is returned by Load for an unknown session ID.
var ErrSessionNotFound = errors.New("postgres: session not found")

const insertBatchSize = 500

var _ tracing.Ingester = (*Archive)(nil)

// Ingest stores session in one transaction. A session flushed more than
// once is merged: its name and metadata are updated and events already
// stored (by event ID) are left untouched. Accepted counts the events that
// were new.
func (a *Archive) Ingest(ctx context.Context, session tracing.Session) (_ *tracing.IngestResult, err error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { a.observeOperation("ingest", session.ID, start, err, int64(len(session.Events))) }()

	rec, events, err := toRecords(session)
	if err != nil {
		return nil, err
	}

	var accepted int64
	err = a.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "metadata", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return fmt.Errorf("upsert session: %w", err)
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&events, insertBatchSize)
		if res.Error != nil {
			return fmt.Errorf("insert events: %w", res.Error)
		}
		accepted = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &tracing.IngestResult{SessionID: session.ID, Accepted: int(accepted)}, nil
}

// Load returns a stored session with its events ordered by timestamp.
func (a *Archive) Load(ctx context.Context, id string) (_ *tracing.Session, err error) {
	start := time.Now()
	defer func() { a.observeOperation("load", id, start, err, 0) }()

	db := a.DB().WithContext(ctx)

	var rec sessionRecord
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("postgres: load session: %w", err)
	}

	var events []eventRecord
	if err := db.Where("session_id = ?", id).Order("occurred_at, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("postgres: load events: %w", err)
	}
	return fromRecords(rec, events)
}

// SessionSummary describes a stored session without its events.
type SessionSummary struct {
	ID         string
	Name       string
	StartedAt  time.Time
	EventCount int64
}

// ListSessions returns up to limit sessions, most recently started first.
// A limit <= 0 returns every session.
func (a *Archive) ListSessions(ctx context.Context, limit int) (_ []SessionSummary, err error) {
	start := time.Now()
	defer func() { a.observeOperation("list", "", start, err, 0) }()

	q := a.DB().WithContext(ctx).
		Model(&sessionRecord{}).
		Select("tracing_sessions.id, tracing_sessions.name, tracing_sessions.started_at, COUNT(tracing_events.id) AS event_count").
		Joins("LEFT JOIN tracing_events ON tracing_events.session_id = tracing_sessions.id").
		Group("tracing_sessions.id").
		Order("tracing_sessions.started_at DESC, tracing_sessions.id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []SessionSummary
	if err := q.Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("postgres: list sessions: %w", err)
	}
	for i := range out {
		out[i].StartedAt = out[i].StartedAt.UTC()
	}
	return out, nil
}

// Delete removes a session and its events.
func (a *Archive) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { a.observeOperation("delete", id, start, err, 0) }()

	return a.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&eventRecord{}).Error; err != nil {
			return fmt.Errorf("postgres: delete events: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&sessionRecord{})
		if res.Error != nil {
			return fmt.Errorf("postgres: delete session: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil
	})
}

func (a *Archive) observeOperation(operation, sessionID string, start time.Time, err error, size int64) {
	if a.observer == nil {
		return
	}
	a.observer.ObserveOperation(observability.OperationContext{
		Component:   "postgres",
		Operation:   operation,
		Resource:    a.cfg.Connection.DbName,
		SubResource: sessionID,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
	})
}
