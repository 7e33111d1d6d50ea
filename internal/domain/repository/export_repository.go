package repository

import "github.com/nordkassa/kassa-api/internal/domain/entity"

// ExportRepository is the persistence port for the audit file export log.
type ExportRepository interface {
	Create(export *entity.SaftExport) error
	ListByStore(storeID int64) ([]*entity.SaftExport, error)
}
