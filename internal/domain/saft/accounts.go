// Package saft holds the ledger classification rules shared by the SAF-T
// audit file generator and the X/Z report aggregation.
package saft

import "github.com/nordkassa/kassa-api/internal/domain/entity"

// Ledger account IDs (standard Norwegian chart of accounts).
const (
	AccountCash    = "1920" // kontanter
	AccountCard    = "1921" // bankterminal
	AccountOther   = "1922" // øvrige betalingsmidler
	AccountRevenue = "3000" // salgsinntekt, avgiftspliktig
	AccountTips    = "3001" // tips
)

// AccountForPaymentMethod maps a charge's payment method to the ledger account
// the debit line is posted against. Unknown and empty methods fall through to
// the generic payment account.
func AccountForPaymentMethod(method string) string {
	switch method {
	case entity.PaymentMethodCash:
		return AccountCash
	case entity.PaymentMethodCard:
		return AccountCard
	default:
		return AccountOther
	}
}
