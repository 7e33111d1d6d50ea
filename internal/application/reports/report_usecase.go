// Package reports implements the X/Z POS report aggregation: the same
// account and VAT classification rules as the SAF-T export, computed
// in-memory for one session and rendered on screen or as PDF.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nordkassa/kassa-api/internal/domain"
	"github.com/nordkassa/kassa-api/internal/domain/entity"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
	pkgsaft "github.com/nordkassa/kassa-api/pkg/saft"
)

// Report types.
const (
	TypeX = "X" // interim, non-resetting
	TypeZ = "Z" // end-of-session, requires a closed session
)

// PaymentMethodTotal is the per-method breakdown of succeeded charges, tagged
// with the ledger account the debits post to.
type PaymentMethodTotal struct {
	Method    string
	AccountID string
	Count     int
	Amount    int64 // øre
}

// Report is the aggregated view of one session. All amounts are gross øre.
type Report struct {
	Type          string
	StoreID       int64
	StoreName     string
	SessionID     int64
	SessionNumber string
	SessionStatus string
	DeviceName    string
	CashierName   string
	OpenedAt      time.Time
	ClosedAt      *time.Time
	GeneratedAt   time.Time

	SalesCount       int
	GrossTotal       int64
	TipsTotal        int64
	VATTotal         int64
	PaymentMethods   []PaymentMethodTotal
	RefundedCount    int
	EventCount       int
	NullinnslagCount int
}

// ReportUseCase builds X and Z reports and records the generation itself as a
// POS event, as the cash register regulation requires.
type ReportUseCase struct {
	storeRepo   repository.StoreRepository
	sessionRepo repository.SessionRepository
	eventRepo   repository.EventRepository
	vat         domainsaft.VATPolicy
	now         func() time.Time
}

// NewReportUseCase wires the use case. now is injectable for tests; pass nil
// for time.Now.
func NewReportUseCase(
	storeRepo repository.StoreRepository,
	sessionRepo repository.SessionRepository,
	eventRepo repository.EventRepository,
	vat domainsaft.VATPolicy,
	now func() time.Time,
) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportUseCase{
		storeRepo:   storeRepo,
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		vat:         vat,
		now:         now,
	}
}

// GenerateX builds an interim report. X-reports do not reset anything and are
// allowed on open and closed sessions alike.
func (uc *ReportUseCase) GenerateX(ctx context.Context, sessionID int64) (*Report, error) {
	return uc.generate(ctx, sessionID, TypeX)
}

// GenerateZ builds the end-of-session report. The session must already be
// closed; closing itself belongs to the POS platform, not this service.
func (uc *ReportUseCase) GenerateZ(ctx context.Context, sessionID int64) (*Report, error) {
	return uc.generate(ctx, sessionID, TypeZ)
}

func (uc *ReportUseCase) generate(_ context.Context, sessionID int64, reportType string) (*Report, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("report: load session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if reportType == TypeZ && !session.IsClosed() {
		return nil, domain.ErrSessionOpen
	}

	store, err := uc.storeRepo.GetByID(session.StoreID)
	if err != nil {
		return nil, fmt.Errorf("report: load store: %w", err)
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	report := BuildReport(store, session, uc.vat, reportType, uc.now())

	if err := uc.recordEvent(session, report); err != nil {
		return nil, fmt.Errorf("report: record event: %w", err)
	}
	return report, nil
}

// recordEvent persists the report generation as an auditable POS event with a
// summary payload.
func (uc *ReportUseCase) recordEvent(session *entity.PosSession, report *Report) error {
	code := pkgsaft.EventCodeXReport
	eventType := "x_report"
	if report.Type == TypeZ {
		code = pkgsaft.EventCodeZReport
		eventType = "z_report"
	}
	payload, err := json.Marshal(map[string]any{
		"sales_count": report.SalesCount,
		"gross_total": report.GrossTotal,
		"tips_total":  report.TipsTotal,
		"vat_total":   report.VATTotal,
	})
	if err != nil {
		return err
	}
	return uc.eventRepo.Create(&entity.PosEvent{
		PosSessionID: session.ID,
		EventCode:    code,
		EventType:    eventType,
		Description:  pkgsaft.EventDescriptions[code],
		EventData:    payload,
		OccurredAt:   report.GeneratedAt,
	})
}

// BuildReport aggregates one session with the shared classification rules.
// Pure; exported so the PDF generator and tests can exercise it directly.
func BuildReport(store *entity.Store, session *entity.PosSession, vat domainsaft.VATPolicy, reportType string, now time.Time) *Report {
	report := &Report{
		Type:          reportType,
		StoreID:       store.ID,
		StoreName:     store.Name,
		SessionID:     session.ID,
		SessionNumber: session.SessionNumber,
		SessionStatus: session.Status,
		DeviceName:    session.DeviceName(),
		OpenedAt:      session.OpenedAt,
		ClosedAt:      session.ClosedAt,
		GeneratedAt:   now,
	}
	if session.User != nil {
		report.CashierName = session.User.Name
	}

	// Fixed order so reports render and serialize deterministically.
	methods := []struct{ method, account string }{
		{entity.PaymentMethodCash, domainsaft.AccountCash},
		{entity.PaymentMethodCard, domainsaft.AccountCard},
		{"other", domainsaft.AccountOther},
	}
	totals := map[string]*PaymentMethodTotal{}
	for _, m := range methods {
		totals[m.method] = &PaymentMethodTotal{Method: m.method, AccountID: m.account}
	}

	for _, charge := range session.Charges {
		if charge.Status == entity.ChargeStatusRefunded {
			report.RefundedCount++
		}
		if charge.Status != entity.ChargeStatusSucceeded {
			continue
		}
		report.SalesCount++
		report.GrossTotal += charge.Amount
		report.TipsTotal += charge.TipAmount
		report.VATTotal += vat.TaxAmount(charge.Amount)

		key := charge.PaymentMethod
		if key != entity.PaymentMethodCash && key != entity.PaymentMethodCard {
			key = "other"
		}
		totals[key].Count++
		totals[key].Amount += charge.Amount
	}
	for _, m := range methods {
		report.PaymentMethods = append(report.PaymentMethods, *totals[m.method])
	}

	report.EventCount = len(session.Events)
	for _, event := range session.Events {
		if event.EventCode == pkgsaft.EventCodeDrawerOpen {
			report.NullinnslagCount++
		}
	}
	return report
}
