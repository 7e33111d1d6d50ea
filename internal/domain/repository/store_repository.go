package repository

import "github.com/nordkassa/kassa-api/internal/domain/entity"

// StoreRepository is the persistence port for stores (read-only here; stores
// are managed by the platform sync, not by this service).
type StoreRepository interface {
	GetByID(id int64) (*entity.Store, error)
	List() ([]*entity.Store, error)
}
