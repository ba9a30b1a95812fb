// api/store/event_store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storepulse/api/database"
	"storepulse/api/models"
)

const (
	defaultActorEventLimit = 100
	maxKindEventLimit      = 1000
)

// EventStore is the append-only event log backed by ClickHouse. Records are
// written once and never updated or deleted.
type EventStore struct {
	DB *database.ClickHouseClient
}

func NewEventStore(chClient *database.ClickHouseClient) *EventStore {
	return &EventStore{
		DB: chClient,
	}
}

const eventColumns = `event_id, actor_id, kind, subject_kind, subject_id, action, payload,
		device, browser, ip_address, user_agent, session_id, timestamp`

// RecordEvent writes one immutable event. The timestamp is assigned here when
// the caller left it zero.
func (s *EventStore) RecordEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.SubjectKind == "" {
		event.SubjectKind = models.SubjectNone
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, fmt.Sprintf(`
		INSERT INTO user_events (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, eventColumns))
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to prepare event insert: %w", err)
	}

	err = batch.Append(
		event.EventID,
		event.ActorID,
		string(event.Kind),
		string(event.SubjectKind),
		event.SubjectID,
		event.Action,
		string(event.Payload),
		event.Device,
		event.Browser,
		event.IPAddress,
		event.UserAgent,
		event.SessionID,
		event.Timestamp,
	)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to append event %s: %w", event.EventID, err)
	}

	if err := batch.Send(); err != nil {
		return models.Event{}, fmt.Errorf("failed to send event batch: %w", err)
	}

	return event, nil
}

// ListByActor returns the actor's events, newest first.
func (s *EventStore) ListByActor(ctx context.Context, actorID string, limit uint64) ([]models.Event, error) {
	if limit == 0 {
		limit = defaultActorEventLimit
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM user_events
		WHERE actor_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, eventColumns)

	rows, err := s.DB.Conn.Query(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by actor: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListByKind returns events of one kind inside an optional window, newest
// first, capped at 1000 records.
func (s *EventStore) ListByKind(ctx context.Context, kind models.EventKind, from, to *time.Time) ([]models.Event, error) {
	var args []interface{}
	args = append(args, string(kind))

	whereClause := "WHERE kind = ?"
	if from != nil {
		whereClause += " AND timestamp >= ?"
		args = append(args, *from)
	}
	if to != nil {
		whereClause += " AND timestamp <= ?"
		args = append(args, *to)
	}
	args = append(args, uint64(maxKindEventLimit))

	query := fmt.Sprintf(`
		SELECT %s
		FROM user_events
		%s
		ORDER BY timestamp DESC
		LIMIT ?
	`, eventColumns, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by kind: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Summarize groups event counts by kind within the optional window. Empty
// history yields a zero summary, not an error.
func (s *EventStore) Summarize(ctx context.Context, from, to *time.Time) (models.EventSummary, error) {
	var args []interface{}
	whereClause := ""
	if from != nil || to != nil {
		whereClause = "WHERE 1 = 1"
		if from != nil {
			whereClause += " AND timestamp >= ?"
			args = append(args, *from)
		}
		if to != nil {
			whereClause += " AND timestamp <= ?"
			args = append(args, *to)
		}
	}

	query := fmt.Sprintf(`
		SELECT kind, count() AS total
		FROM user_events
		%s
		GROUP BY kind
		ORDER BY total DESC
	`, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return models.EventSummary{}, fmt.Errorf("failed to query event summary: %w", err)
	}
	defer rows.Close()

	summary := models.EventSummary{ByKind: []models.KindCount{}}
	for rows.Next() {
		var kind string
		var count uint64
		if err := rows.Scan(&kind, &count); err != nil {
			log.Printf("Error scanning row for event summary: %v", err)
			continue
		}
		summary.ByKind = append(summary.ByKind, models.KindCount{
			Kind:  models.EventKind(kind),
			Count: count,
		})
		summary.TotalEvents += count
	}

	if err := rows.Err(); err != nil {
		return models.EventSummary{}, fmt.Errorf("row error during event summary query: %w", err)
	}

	return summary, nil
}

// CountSubjectEvents counts events of one kind for one subject within
// [from, to]. Feeds the product funnel rollup.
func (s *EventStore) CountSubjectEvents(ctx context.Context, kind models.EventKind, subjectID string, from, to time.Time) (uint64, error) {
	query := `
		SELECT count()
		FROM user_events
		WHERE kind = ? AND subject_id = ? AND timestamp >= ? AND timestamp <= ?
	`

	var count uint64
	if err := s.DB.Conn.QueryRow(ctx, query, string(kind), subjectID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s events for subject %s: %w", kind, subjectID, err)
	}

	return count, nil
}

type eventRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func collectEvents(rows eventRows) ([]models.Event, error) {
	events := []models.Event{}
	for rows.Next() {
		var (
			e                          models.Event
			kind, subjectKind, payload string
		)
		if err := rows.Scan(
			&e.EventID,
			&e.ActorID,
			&kind,
			&subjectKind,
			&e.SubjectID,
			&e.Action,
			&payload,
			&e.Device,
			&e.Browser,
			&e.IPAddress,
			&e.UserAgent,
			&e.SessionID,
			&e.Timestamp,
		); err != nil {
			log.Printf("Error scanning event row: %v", err)
			continue
		}
		e.Kind = models.EventKind(kind)
		e.SubjectKind = models.SubjectKind(subjectKind)
		if payload != "" {
			e.Payload = json.RawMessage(payload)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading events: %w", err)
	}

	return events, nil
}
