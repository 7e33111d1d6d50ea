package entity

import (
	"encoding/json"
	"time"
)

// PosEvent is an auditable occurrence tied to a session: X/Z report generation,
// cash drawer openings (nullinnslag), price lookups. EventCode values are the
// SAF-T Cash Register predefined basic IDs (see pkg/saft).
type PosEvent struct {
	ID           int64
	PosSessionID int64
	EventCode    string // numeric string, e.g. "13008"
	EventType    string
	Description  string
	EventData    json.RawMessage // structured payload, flattened into the export
	OccurredAt   time.Time
	CreatedAt    time.Time
}

// DataMap decodes the structured payload. Returns nil when the event carries
// no payload or the payload is not a JSON object.
func (e *PosEvent) DataMap() map[string]any {
	if len(e.EventData) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(e.EventData, &m); err != nil {
		return nil
	}
	return m
}
