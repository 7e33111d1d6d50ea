package entity

import "time"

// SaftExport records one generated audit file, so re-runs are traceable.
// The XML itself is not persisted here; the caller decides where to store it.
type SaftExport struct {
	ID        string // uuid
	StoreID   int64
	FromDate  time.Time
	ToDate    time.Time
	Filename  string
	ByteSize  int64
	CreatedAt time.Time
}
