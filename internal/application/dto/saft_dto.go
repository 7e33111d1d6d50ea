package dto

import (
	"time"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
)

// GenerateSaftRequest body for POST /api/stores/:id/saft.
// Dates are inclusive calendar days, formatted YYYY-MM-DD.
type GenerateSaftRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// SaftExportResponse one export log row.
type SaftExportResponse struct {
	ID        string    `json:"id"`
	StoreID   int64     `json:"store_id"`
	FromDate  string    `json:"from_date"`
	ToDate    string    `json:"to_date"`
	Filename  string    `json:"filename"`
	ByteSize  int64     `json:"byte_size"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSaftExportResponse maps an export log entity.
func NewSaftExportResponse(e *entity.SaftExport) SaftExportResponse {
	return SaftExportResponse{
		ID:        e.ID,
		StoreID:   e.StoreID,
		FromDate:  e.FromDate.Format("2006-01-02"),
		ToDate:    e.ToDate.Format("2006-01-02"),
		Filename:  e.Filename,
		ByteSize:  e.ByteSize,
		CreatedAt: e.CreatedAt,
	}
}
