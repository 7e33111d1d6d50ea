package entity

import "time"

// POS session states. Only closed sessions are eligible for SAF-T export.
const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// PosSession is one cash register shift: opened by a cashier on a device,
// accumulates charges and audit events, and is closed with a Z-report.
type PosSession struct {
	ID            int64
	SessionNumber string // zero-padded human number, e.g. "000123"
	StoreID       int64
	PosDeviceID   *int64
	UserID        *int64
	Status        string
	OpenedAt      time.Time
	ClosedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Eager-loaded associations (nil/empty when not loaded).
	Charges []*ConnectedCharge
	Events  []*PosEvent
	Device  *PosDevice
	User    *User
}

// IsClosed reports whether the session has been closed with a Z-report.
func (s *PosSession) IsClosed() bool {
	return s.Status == SessionStatusClosed
}

// SucceededCharges returns the charges that count towards ledger totals,
// preserving the loaded (id ascending) order.
func (s *PosSession) SucceededCharges() []*ConnectedCharge {
	out := make([]*ConnectedCharge, 0, len(s.Charges))
	for _, c := range s.Charges {
		if c.Status == ChargeStatusSucceeded {
			out = append(out, c)
		}
	}
	return out
}

// DeviceName returns the session device name, or "Unknown" when the session
// has no device attached (manual entries, decommissioned terminals).
func (s *PosSession) DeviceName() string {
	if s.Device == nil || s.Device.Name == "" {
		return "Unknown"
	}
	return s.Device.Name
}
