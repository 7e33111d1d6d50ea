package repository

import "github.com/nordkassa/kassa-api/internal/domain/entity"

// EventRepository is the persistence port for POS audit events. Report
// generation records an event (13008/13009): producing a report is itself an
// auditable occurrence under the cash register regulation.
type EventRepository interface {
	Create(event *entity.PosEvent) error
	ListBySession(sessionID int64) ([]*entity.PosEvent, error)
}
