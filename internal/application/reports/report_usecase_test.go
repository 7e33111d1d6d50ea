package reports_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordkassa/kassa-api/internal/application/reports"
	"github.com/nordkassa/kassa-api/internal/domain"
	"github.com/nordkassa/kassa-api/internal/domain/entity"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
)

type fakeStoreRepo struct {
	store *entity.Store
}

func (f *fakeStoreRepo) GetByID(id int64) (*entity.Store, error) {
	if f.store != nil && f.store.ID == id {
		return f.store, nil
	}
	return nil, nil
}

func (f *fakeStoreRepo) List() ([]*entity.Store, error) {
	if f.store == nil {
		return nil, nil
	}
	return []*entity.Store{f.store}, nil
}

type fakeSessionRepo struct {
	session *entity.PosSession
}

func (f *fakeSessionRepo) GetByID(id int64) (*entity.PosSession, error) {
	if f.session != nil && f.session.ID == id {
		return f.session, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) ListClosedInRange(int64, time.Time, time.Time) ([]*entity.PosSession, error) {
	if f.session == nil {
		return nil, nil
	}
	return []*entity.PosSession{f.session}, nil
}

type fakeEventRepo struct {
	created []*entity.PosEvent
}

func (f *fakeEventRepo) Create(event *entity.PosEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEventRepo) ListBySession(int64) ([]*entity.PosEvent, error) {
	return f.created, nil
}

var reportNow = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func testSession() *entity.PosSession {
	closed := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	return &entity.PosSession{
		ID:            42,
		SessionNumber: "000123",
		StoreID:       1,
		Status:        entity.SessionStatusClosed,
		OpenedAt:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ClosedAt:      &closed,
		Device:        &entity.PosDevice{ID: 7, Name: "Terminal 1"},
		User:          &entity.User{ID: 3, Name: "Kari Nordmann"},
		Charges: []*entity.ConnectedCharge{
			{ID: 1, Amount: 10000, Status: entity.ChargeStatusSucceeded, PaymentMethod: entity.PaymentMethodCash},
			{ID: 2, Amount: 20000, TipAmount: 1000, Status: entity.ChargeStatusSucceeded, PaymentMethod: entity.PaymentMethodCard},
			{ID: 3, Amount: 5000, Status: entity.ChargeStatusSucceeded, PaymentMethod: "vipps"},
			{ID: 4, Amount: 7000, Status: entity.ChargeStatusRefunded, PaymentMethod: entity.PaymentMethodCard},
			{ID: 5, Amount: 3000, Status: entity.ChargeStatusFailed, PaymentMethod: entity.PaymentMethodCash},
		},
		Events: []*entity.PosEvent{
			{ID: 1, EventCode: "13012", EventType: "drawer_open"},
			{ID: 2, EventCode: "13012", EventType: "drawer_open"},
			{ID: 3, EventCode: "13005", EventType: "price_lookup"},
		},
	}
}

func newTestUseCase(session *entity.PosSession, events *fakeEventRepo) *reports.ReportUseCase {
	return reports.NewReportUseCase(
		&fakeStoreRepo{store: &entity.Store{ID: 1, Name: "Test AS", Currency: "NOK"}},
		&fakeSessionRepo{session: session},
		events,
		domainsaft.StandardVATPolicy(),
		func() time.Time { return reportNow },
	)
}

func TestGenerateX_Aggregates(t *testing.T) {
	events := &fakeEventRepo{}
	uc := newTestUseCase(testSession(), events)

	report, err := uc.GenerateX(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, reports.TypeX, report.Type)
	assert.Equal(t, "Test AS", report.StoreName)
	assert.Equal(t, "000123", report.SessionNumber)
	assert.Equal(t, "Terminal 1", report.DeviceName)
	assert.Equal(t, "Kari Nordmann", report.CashierName)
	assert.Equal(t, reportNow, report.GeneratedAt)

	// Only the three succeeded charges count.
	assert.Equal(t, 3, report.SalesCount)
	assert.Equal(t, int64(35000), report.GrossTotal)
	assert.Equal(t, int64(1000), report.TipsTotal)
	// round(10000*0.2) + round(20000*0.2) + round(5000*0.2)
	assert.Equal(t, int64(7000), report.VATTotal)
	assert.Equal(t, 1, report.RefundedCount)
	assert.Equal(t, 3, report.EventCount)
	assert.Equal(t, 2, report.NullinnslagCount)

	// Fixed order: cash, card, other; unknown methods land in other.
	require.Len(t, report.PaymentMethods, 3)
	cash, card, other := report.PaymentMethods[0], report.PaymentMethods[1], report.PaymentMethods[2]
	assert.Equal(t, "cash", cash.Method)
	assert.Equal(t, "1920", cash.AccountID)
	assert.Equal(t, 1, cash.Count)
	assert.Equal(t, int64(10000), cash.Amount)
	assert.Equal(t, "card", card.Method)
	assert.Equal(t, int64(20000), card.Amount)
	assert.Equal(t, "other", other.Method)
	assert.Equal(t, "1922", other.AccountID)
	assert.Equal(t, int64(5000), other.Amount)
}

func TestGenerateX_RecordsEvent(t *testing.T) {
	events := &fakeEventRepo{}
	uc := newTestUseCase(testSession(), events)

	report, err := uc.GenerateX(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, events.created, 1)
	event := events.created[0]
	assert.Equal(t, int64(42), event.PosSessionID)
	assert.Equal(t, "13008", event.EventCode)
	assert.Equal(t, "x_report", event.EventType)
	assert.Equal(t, reportNow, event.OccurredAt)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(event.EventData, &payload))
	assert.Equal(t, float64(report.SalesCount), payload["sales_count"])
	assert.Equal(t, float64(report.GrossTotal), payload["gross_total"])
	assert.Equal(t, float64(report.TipsTotal), payload["tips_total"])
	assert.Equal(t, float64(report.VATTotal), payload["vat_total"])
}

func TestGenerateZ_ClosedSession(t *testing.T) {
	events := &fakeEventRepo{}
	uc := newTestUseCase(testSession(), events)

	report, err := uc.GenerateZ(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, reports.TypeZ, report.Type)
	require.Len(t, events.created, 1)
	assert.Equal(t, "13009", events.created[0].EventCode)
	assert.Equal(t, "z_report", events.created[0].EventType)
}

func TestGenerateZ_OpenSessionRejected(t *testing.T) {
	session := testSession()
	session.Status = entity.SessionStatusOpen
	session.ClosedAt = nil
	events := &fakeEventRepo{}
	uc := newTestUseCase(session, events)

	_, err := uc.GenerateZ(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrSessionOpen)
	assert.Empty(t, events.created, "a rejected Z-report must not leave an event behind")
}

func TestGenerateX_OpenSessionAllowed(t *testing.T) {
	session := testSession()
	session.Status = entity.SessionStatusOpen
	session.ClosedAt = nil
	uc := newTestUseCase(session, &fakeEventRepo{})

	report, err := uc.GenerateX(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusOpen, report.SessionStatus)
	assert.Nil(t, report.ClosedAt)
}

func TestGenerate_SessionNotFound(t *testing.T) {
	uc := newTestUseCase(testSession(), &fakeEventRepo{})

	_, err := uc.GenerateX(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildReport_EmptySession(t *testing.T) {
	store := &entity.Store{ID: 1, Name: "Test AS"}
	session := &entity.PosSession{
		ID: 50, SessionNumber: "000200", StoreID: 1,
		Status:   entity.SessionStatusOpen,
		OpenedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	report := reports.BuildReport(store, session, domainsaft.StandardVATPolicy(), reports.TypeX, reportNow)

	assert.Zero(t, report.SalesCount)
	assert.Zero(t, report.GrossTotal)
	assert.Equal(t, "Unknown", report.DeviceName)
	require.Len(t, report.PaymentMethods, 3, "the breakdown keeps all rows even when empty")
	for _, m := range report.PaymentMethods {
		assert.Zero(t, m.Count)
		assert.Zero(t, m.Amount)
	}
}
