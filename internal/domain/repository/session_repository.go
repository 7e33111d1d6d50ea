package repository

import (
	"time"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
)

// SessionRepository is the persistence port for POS sessions.
type SessionRepository interface {
	// GetByID loads one session with charges, events, device and user.
	GetByID(id int64) (*entity.PosSession, error)
	// ListClosedInRange returns closed sessions of the store whose opened_at
	// calendar date falls inside [from, to], ordered by opened_at ascending,
	// with charges, events, device and user eagerly loaded. Time-of-day on the
	// bounds is ignored. An empty range yields an empty slice, not an error.
	ListClosedInRange(storeID int64, from, to time.Time) ([]*entity.PosSession, error)
}
