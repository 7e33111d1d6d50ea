// Package saft implements the Norwegian SAF-T Cash Register audit file
// (Skatteetaten schema v1.00) as a pure projection over already-persisted
// session data. The builder performs no I/O; callers decide where the
// resulting document is written.
package saft

import (
	"time"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
)

// SoftwareInfo identifies the producing system in the file header.
type SoftwareInfo struct {
	CompanyName string // software vendor, e.g. "Nordkassa AS"
	Name        string
	ID          string
	Version     string
}

// AuditFileBuildContext carries everything needed to assemble one audit file.
// Now is injected so the same input always yields the same bytes.
type AuditFileBuildContext struct {
	Store    *entity.Store
	Sessions []*entity.PosSession
	FromDate time.Time
	ToDate   time.Time
	Now      time.Time
	Software SoftwareInfo
	VAT      domainsaft.VATPolicy
}
