package entity

import (
	"encoding/json"
	"time"
)

// Store represents a point-of-sale location (tenant scope for exports and reports).
// Metadata carries free-form key/values mirrored from the payment platform; the
// Norwegian organization number lives there under "organization_number".
type Store struct {
	ID        int64
	Name      string
	Currency  string // ISO 4217, normally NOK
	Metadata  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationNumber returns the Norwegian organisasjonsnummer from metadata,
// or "" when the store has none registered. Exports require the empty string,
// never a null element.
func (s *Store) OrganizationNumber() string {
	if len(s.Metadata) == 0 {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(s.Metadata, &m); err != nil {
		return ""
	}
	if v, ok := m["organization_number"].(string); ok {
		return v
	}
	return ""
}
