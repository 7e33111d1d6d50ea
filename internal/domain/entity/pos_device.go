package entity

import "time"

// PosDevice is a physical or virtual cash register terminal within a store.
type PosDevice struct {
	ID        int64
	StoreID   int64
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
