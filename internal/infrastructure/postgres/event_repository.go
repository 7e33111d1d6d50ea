package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implements EventRepository (usable with pool or tx).
type EventRepo struct {
	q Querier
}

// NewEventRepository builds the adapter. Pass a pool or tx (Querier).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

// Create persists a new POS event and fills in the generated ID.
func (r *EventRepo) Create(event *entity.PosEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO pos_events (pos_session_id, event_code, event_type, description, event_data, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		event.PosSessionID, event.EventCode, event.EventType,
		nullIfEmpty(event.Description), event.EventData, event.OccurredAt, event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("insert pos event: %w", err)
	}
	return nil
}

// ListBySession returns the events of one session in occurrence order.
func (r *EventRepo) ListBySession(sessionID int64) ([]*entity.PosEvent, error) {
	query := `
		SELECT id, pos_session_id, event_code, event_type, description, event_data,
		       occurred_at, created_at
		FROM pos_events
		WHERE pos_session_id = $1
		ORDER BY occurred_at, id`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list pos events: %w", err)
	}
	defer rows.Close()

	var list []*entity.PosEvent
	for rows.Next() {
		var e entity.PosEvent
		var description *string
		if err := rows.Scan(
			&e.ID, &e.PosSessionID, &e.EventCode, &e.EventType, &description,
			&e.EventData, &e.OccurredAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pos event: %w", err)
		}
		e.Description = deref(description)
		list = append(list, &e)
	}
	return list, rows.Err()
}
