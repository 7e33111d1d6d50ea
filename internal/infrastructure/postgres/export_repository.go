package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nordkassa/kassa-api/internal/domain"
	"github.com/nordkassa/kassa-api/internal/domain/entity"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
)

var _ repository.ExportRepository = (*ExportRepo)(nil)

// ExportRepo implements ExportRepository (usable with pool or tx).
type ExportRepo struct {
	q Querier
}

// NewExportRepository builds the adapter. Pass a pool or tx (Querier).
func NewExportRepository(q Querier) *ExportRepo {
	return &ExportRepo{q: q}
}

// Create persists one export log row.
func (r *ExportRepo) Create(export *entity.SaftExport) error {
	if export.ID == "" {
		export.ID = uuid.New().String()
	}
	if export.CreatedAt.IsZero() {
		export.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO saft_exports (id, store_id, from_date, to_date, filename, byte_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		export.ID, export.StoreID, export.FromDate, export.ToDate,
		export.Filename, export.ByteSize, export.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert saft export: %w", err)
	}
	return nil
}

// ListByStore returns the export history of a store, newest first.
func (r *ExportRepo) ListByStore(storeID int64) ([]*entity.SaftExport, error) {
	query := `
		SELECT id, store_id, from_date, to_date, filename, byte_size, created_at
		FROM saft_exports
		WHERE store_id = $1
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list saft exports: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaftExport
	for rows.Next() {
		var e entity.SaftExport
		if err := rows.Scan(
			&e.ID, &e.StoreID, &e.FromDate, &e.ToDate, &e.Filename, &e.ByteSize, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan saft export: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
