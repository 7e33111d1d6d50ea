package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nordkassa/kassa-api/internal/application/reports"
)

// PaymentMethodTotalResponse per-method breakdown, amounts both in øre and
// formatted NOK.
type PaymentMethodTotalResponse struct {
	Method    string `json:"method"`
	AccountID string `json:"account_id"`
	Count     int    `json:"count"`
	Amount    int64  `json:"amount"`
	AmountNOK string `json:"amount_nok"`
}

// ReportResponse X/Z report for on-screen rendering.
type ReportResponse struct {
	Type             string                       `json:"type"`
	StoreID          int64                        `json:"store_id"`
	StoreName        string                       `json:"store_name"`
	SessionID        int64                        `json:"session_id"`
	SessionNumber    string                       `json:"session_number"`
	SessionStatus    string                       `json:"session_status"`
	DeviceName       string                       `json:"device_name"`
	CashierName      string                       `json:"cashier_name,omitempty"`
	OpenedAt         time.Time                    `json:"opened_at"`
	ClosedAt         *time.Time                   `json:"closed_at,omitempty"`
	GeneratedAt      time.Time                    `json:"generated_at"`
	SalesCount       int                          `json:"sales_count"`
	GrossTotal       int64                        `json:"gross_total"`
	GrossTotalNOK    string                       `json:"gross_total_nok"`
	TipsTotal        int64                        `json:"tips_total"`
	TipsTotalNOK     string                       `json:"tips_total_nok"`
	VATTotal         int64                        `json:"vat_total"`
	VATTotalNOK      string                       `json:"vat_total_nok"`
	PaymentMethods   []PaymentMethodTotalResponse `json:"payment_methods"`
	RefundedCount    int                          `json:"refunded_count"`
	EventCount       int                          `json:"event_count"`
	NullinnslagCount int                          `json:"nullinnslag_count"`
}

// NewReportResponse maps an aggregated report.
func NewReportResponse(r *reports.Report) ReportResponse {
	methods := make([]PaymentMethodTotalResponse, 0, len(r.PaymentMethods))
	for _, m := range r.PaymentMethods {
		methods = append(methods, PaymentMethodTotalResponse{
			Method:    m.Method,
			AccountID: m.AccountID,
			Count:     m.Count,
			Amount:    m.Amount,
			AmountNOK: FormatNOK(m.Amount),
		})
	}
	return ReportResponse{
		Type:             r.Type,
		StoreID:          r.StoreID,
		StoreName:        r.StoreName,
		SessionID:        r.SessionID,
		SessionNumber:    r.SessionNumber,
		SessionStatus:    r.SessionStatus,
		DeviceName:       r.DeviceName,
		CashierName:      r.CashierName,
		OpenedAt:         r.OpenedAt,
		ClosedAt:         r.ClosedAt,
		GeneratedAt:      r.GeneratedAt,
		SalesCount:       r.SalesCount,
		GrossTotal:       r.GrossTotal,
		GrossTotalNOK:    FormatNOK(r.GrossTotal),
		TipsTotal:        r.TipsTotal,
		TipsTotalNOK:     FormatNOK(r.TipsTotal),
		VATTotal:         r.VATTotal,
		VATTotalNOK:      FormatNOK(r.VATTotal),
		PaymentMethods:   methods,
		RefundedCount:    r.RefundedCount,
		EventCount:       r.EventCount,
		NullinnslagCount: r.NullinnslagCount,
	}
}

// FormatNOK renders øre as kroner with two decimals ("10000" -> "100.00").
func FormatNOK(ore int64) string {
	return decimal.NewFromInt(ore).Div(decimal.NewFromInt(100)).StringFixed(2)
}
