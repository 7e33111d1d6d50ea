package entity

import "time"

// Charge states mirrored from the payment platform. Only succeeded charges
// contribute to ledger totals.
const (
	ChargeStatusSucceeded  = "succeeded"
	ChargeStatusPending    = "pending"
	ChargeStatusProcessing = "processing"
	ChargeStatusFailed     = "failed"
	ChargeStatusRefunded   = "refunded"
)

// Payment methods as recorded on the charge. Anything else (or empty) maps to
// the generic payment account.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// ConnectedCharge is a local mirror of a platform charge tied to a POS session.
// Amount and TipAmount are gross values in minor currency units (øre).
type ConnectedCharge struct {
	ID               int64
	StripeChargeID   string
	PosSessionID     int64
	Amount           int64
	TipAmount        int64
	Status           string
	PaymentMethod    string
	ArticleGroupCode string
	TransactionCode  string
	Description      string
	PaidAt           *time.Time
	CreatedAt        time.Time
}

// TransactionDate is the ledger posting date: paid_at when the platform
// reported settlement, created_at otherwise.
func (c *ConnectedCharge) TransactionDate() time.Time {
	if c.PaidAt != nil {
		return *c.PaidAt
	}
	return c.CreatedAt
}
