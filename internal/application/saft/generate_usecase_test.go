package saft_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsaft "github.com/nordkassa/kassa-api/internal/application/saft"
	"github.com/nordkassa/kassa-api/internal/domain"
	"github.com/nordkassa/kassa-api/internal/domain/entity"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
	infrasaft "github.com/nordkassa/kassa-api/internal/infrastructure/saft"
)

type fakeStoreRepo struct {
	stores map[int64]*entity.Store
}

func (f *fakeStoreRepo) GetByID(id int64) (*entity.Store, error) {
	return f.stores[id], nil
}

func (f *fakeStoreRepo) List() ([]*entity.Store, error) {
	out := make([]*entity.Store, 0, len(f.stores))
	for _, s := range f.stores {
		out = append(out, s)
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions []*entity.PosSession
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeSessionRepo) GetByID(id int64) (*entity.PosSession, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) ListClosedInRange(storeID int64, from, to time.Time) ([]*entity.PosSession, error) {
	f.lastFrom, f.lastTo = from, to
	out := make([]*entity.PosSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		if s.StoreID == storeID && s.IsClosed() {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeExportRepo struct {
	created []*entity.SaftExport
}

func (f *fakeExportRepo) Create(export *entity.SaftExport) error {
	f.created = append(f.created, export)
	return nil
}

func (f *fakeExportRepo) ListByStore(storeID int64) ([]*entity.SaftExport, error) {
	out := make([]*entity.SaftExport, 0, len(f.created))
	for _, e := range f.created {
		if e.StoreID == storeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
}

func newTestUseCase(stores *fakeStoreRepo, sessions *fakeSessionRepo, exports *fakeExportRepo) *appsaft.GenerateUseCase {
	return appsaft.NewGenerateUseCase(
		stores, sessions, exports,
		infrasaft.NewXMLBuilderService(),
		appsaft.Config{
			Software: infrasaft.SoftwareInfo{
				CompanyName: "Nordkassa AS",
				Name:        "Nordkassa POS",
				ID:          "nordkassa-pos",
				Version:     "1.0.0",
			},
			VAT: domainsaft.StandardVATPolicy(),
		},
		fixedNow,
	)
}

func testStore() *entity.Store {
	return &entity.Store{
		ID:       1,
		Name:     "Test AS",
		Currency: "NOK",
		Metadata: json.RawMessage(`{"organization_number":"123456789"}`),
	}
}

func TestGenerate_HappyPath(t *testing.T) {
	closed := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{sessions: []*entity.PosSession{{
		ID:            42,
		SessionNumber: "000123",
		StoreID:       1,
		Status:        entity.SessionStatusClosed,
		OpenedAt:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ClosedAt:      &closed,
		Charges: []*entity.ConnectedCharge{{
			ID: 1, StripeChargeID: "ch_1", Amount: 10000,
			Status: entity.ChargeStatusSucceeded, PaymentMethod: entity.PaymentMethodCash,
		}},
	}}}
	exports := &fakeExportRepo{}
	uc := newTestUseCase(&fakeStoreRepo{stores: map[int64]*entity.Store{1: testStore()}}, sessions, exports)

	result, err := uc.Generate(context.Background(), 1, "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, "saft_kasse_1_2024-03-01_2024-03-31.xml", result.Filename)
	assert.Contains(t, string(result.XML), "<TotalDebit>10000</TotalDebit>")
	assert.Equal(t, "Test AS", result.Store.Name)

	// The repository receives the parsed bounds unchanged.
	assert.Equal(t, "2024-03-01", sessions.lastFrom.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", sessions.lastTo.Format("2006-01-02"))

	// Every run lands in the export log.
	require.Len(t, exports.created, 1)
	logged := exports.created[0]
	assert.NotEmpty(t, logged.ID)
	assert.Equal(t, int64(1), logged.StoreID)
	assert.Equal(t, result.Filename, logged.Filename)
	assert.Equal(t, int64(len(result.XML)), logged.ByteSize)
	assert.Equal(t, fixedNow(), logged.CreatedAt)
}

func TestGenerate_InvalidDates(t *testing.T) {
	uc := newTestUseCase(
		&fakeStoreRepo{stores: map[int64]*entity.Store{1: testStore()}},
		&fakeSessionRepo{}, &fakeExportRepo{},
	)

	_, err := uc.Generate(context.Background(), 1, "01.03.2024", "2024-03-31")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = uc.Generate(context.Background(), 1, "2024-03-01", "not-a-date")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = uc.Generate(context.Background(), 1, "2024-03-31", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reversed range must be rejected")
}

func TestGenerate_StoreNotFound(t *testing.T) {
	exports := &fakeExportRepo{}
	uc := newTestUseCase(&fakeStoreRepo{stores: map[int64]*entity.Store{}}, &fakeSessionRepo{}, exports)

	_, err := uc.Generate(context.Background(), 99, "2024-03-01", "2024-03-31")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, exports.created, "failed runs must not be logged")
}

func TestGenerate_EmptyRange(t *testing.T) {
	exports := &fakeExportRepo{}
	uc := newTestUseCase(
		&fakeStoreRepo{stores: map[int64]*entity.Store{1: testStore()}},
		&fakeSessionRepo{}, exports,
	)

	result, err := uc.Generate(context.Background(), 1, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Contains(t, string(result.XML), "<NumberOfEntries>0</NumberOfEntries>")
	require.Len(t, exports.created, 1, "an empty but valid file is still an export")
}

func TestGenerate_SameDayRangeAllowed(t *testing.T) {
	uc := newTestUseCase(
		&fakeStoreRepo{stores: map[int64]*entity.Store{1: testStore()}},
		&fakeSessionRepo{}, &fakeExportRepo{},
	)

	_, err := uc.Generate(context.Background(), 1, "2024-03-15", "2024-03-15")
	assert.NoError(t, err)
}

func TestListExports_StoreNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeStoreRepo{stores: map[int64]*entity.Store{}}, &fakeSessionRepo{}, &fakeExportRepo{})

	_, err := uc.ListExports(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
