// Package saft contains catalogues aligned with the Norwegian SAF-T Cash
// Register standard v1.00 (Skatteetaten, kassasystemforskriften).
package saft

// =============================================================================
// File-level constants (SAF-T Cash Register schema v1.00)
// =============================================================================

const (
	FileVersion  = "1.00"
	CountryCode  = "NO"
	CurrencyCode = "NOK"
	// Tax accounting basis "K" = kontant (cash basis), mandated for cash
	// register exports.
	AccountingBasisCash = "K"
	// Namespace of the cash register audit file schema.
	Namespace = "urn:StandardAuditFile-Taxation-CashRegister:NO"
)

// =============================================================================
// Journal / transaction predefined basic IDs
// =============================================================================

const (
	// JournalTypeCashRegister marks a journal as a cash register (kassa) journal.
	JournalTypeCashRegister = "KR"
	// TransactionCodeSale is the default transaction code for a cash sale when
	// the charge carries none.
	TransactionCodeSale = "11001"
	// ArticleGroupCodeTip is the predefined article group for gratuity lines.
	ArticleGroupCodeTip = "10001"
)

// =============================================================================
// Event codes (predefined basic IDs, 13xxx range)
// =============================================================================

const (
	EventCodeXReport    = "13008" // interim, non-resetting sales report
	EventCodeZReport    = "13009" // session-closing sales report
	EventCodeDrawerOpen = "13012" // cash drawer opened without a sale (nullinnslag)
)

// EventDescriptions maps the event codes used by the register to the
// regulation's human-readable descriptions.
var EventDescriptions = map[string]string{
	EventCodeXReport:    "X-rapport generert",
	EventCodeZReport:    "Z-rapport generert",
	EventCodeDrawerOpen: "Kasseskuff åpnet uten salg",
}
