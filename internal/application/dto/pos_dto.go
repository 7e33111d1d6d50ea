package dto

import (
	"time"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
)

// StoreResponse store in listings and detail.
type StoreResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	OrganizationNumber string `json:"organization_number,omitempty"`
	Currency           string `json:"currency"`
}

// NewStoreResponse maps a store entity.
func NewStoreResponse(s *entity.Store) StoreResponse {
	return StoreResponse{
		ID:                 s.ID,
		Name:               s.Name,
		OrganizationNumber: s.OrganizationNumber(),
		Currency:           s.Currency,
	}
}

// SessionResponse session summary for GET /api/stores/:id/sessions.
type SessionResponse struct {
	ID            int64      `json:"id"`
	SessionNumber string     `json:"session_number"`
	Status        string     `json:"status"`
	OpenedAt      time.Time  `json:"opened_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	DeviceName    string     `json:"device_name"`
	ChargeCount   int        `json:"charge_count"`
	EventCount    int        `json:"event_count"`
}

// NewSessionResponse maps a session entity with loaded associations.
func NewSessionResponse(s *entity.PosSession) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		SessionNumber: s.SessionNumber,
		Status:        s.Status,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
		DeviceName:    s.DeviceName(),
		ChargeCount:   len(s.Charges),
		EventCount:    len(s.Events),
	}
}
