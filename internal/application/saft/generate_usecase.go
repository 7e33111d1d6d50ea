package saft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nordkassa/kassa-api/internal/domain"
	"github.com/nordkassa/kassa-api/internal/domain/entity"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
	infrasaft "github.com/nordkassa/kassa-api/internal/infrastructure/saft"
)

const dateLayout = "2006-01-02"

// Config carries the software identity stamped into the file header and the
// VAT policy applied to every line.
type Config struct {
	Software infrasaft.SoftwareInfo
	VAT      domainsaft.VATPolicy
}

// Result is one generated audit file plus the metadata the caller needs to
// serve or store it.
type Result struct {
	XML      []byte
	Filename string
	Store    *entity.Store
	FromDate time.Time
	ToDate   time.Time
}

// GenerateUseCase assembles the SAF-T Cash Register export for a store and
// date range. Generation itself is a pure transform: same store, range and
// underlying data produce the same bytes. The export log row written at the
// end is bookkeeping only and never mutates ledger data, so re-runs are safe.
type GenerateUseCase struct {
	storeRepo   repository.StoreRepository
	sessionRepo repository.SessionRepository
	exportRepo  repository.ExportRepository
	builder     *infrasaft.XMLBuilderService
	cfg         Config
	now         func() time.Time
}

// NewGenerateUseCase wires the use case. now is injectable for tests; pass nil
// for time.Now.
func NewGenerateUseCase(
	storeRepo repository.StoreRepository,
	sessionRepo repository.SessionRepository,
	exportRepo repository.ExportRepository,
	builder *infrasaft.XMLBuilderService,
	cfg Config,
	now func() time.Time,
) *GenerateUseCase {
	if now == nil {
		now = time.Now
	}
	return &GenerateUseCase{
		storeRepo:   storeRepo,
		sessionRepo: sessionRepo,
		exportRepo:  exportRepo,
		builder:     builder,
		cfg:         cfg,
		now:         now,
	}
}

// Generate builds the audit file for [fromDate, toDate] (inclusive calendar
// days, "2006-01-02"). Unparsable dates propagate as domain.ErrInvalidDate;
// a range without closed sessions yields a valid file with zero journals.
func (uc *GenerateUseCase) Generate(_ context.Context, storeID int64, fromDate, toDate string) (*Result, error) {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: from_date %q", domain.ErrInvalidDate, fromDate)
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: to_date %q", domain.ErrInvalidDate, toDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to_date before from_date", domain.ErrInvalidInput)
	}

	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, fmt.Errorf("saft: load store: %w", err)
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	sessions, err := uc.sessionRepo.ListClosedInRange(storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("saft: select sessions: %w", err)
	}

	xmlBytes, err := uc.builder.Build(&infrasaft.AuditFileBuildContext{
		Store:    store,
		Sessions: sessions,
		FromDate: from,
		ToDate:   to,
		Now:      uc.now(),
		Software: uc.cfg.Software,
		VAT:      uc.cfg.VAT,
	})
	if err != nil {
		return nil, fmt.Errorf("saft: build audit file: %w", err)
	}

	filename := fmt.Sprintf("saft_kasse_%d_%s_%s.xml",
		store.ID, from.Format(dateLayout), to.Format(dateLayout))

	export := &entity.SaftExport{
		ID:        uuid.New().String(),
		StoreID:   store.ID,
		FromDate:  from,
		ToDate:    to,
		Filename:  filename,
		ByteSize:  int64(len(xmlBytes)),
		CreatedAt: uc.now(),
	}
	if err := uc.exportRepo.Create(export); err != nil {
		return nil, fmt.Errorf("saft: record export: %w", err)
	}

	return &Result{
		XML:      xmlBytes,
		Filename: filename,
		Store:    store,
		FromDate: from,
		ToDate:   to,
	}, nil
}

// ListExports returns the export history for a store, newest first.
func (uc *GenerateUseCase) ListExports(_ context.Context, storeID int64) ([]*entity.SaftExport, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, fmt.Errorf("saft: load store: %w", err)
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	exports, err := uc.exportRepo.ListByStore(storeID)
	if err != nil {
		return nil, fmt.Errorf("saft: list exports: %w", err)
	}
	return exports, nil
}
