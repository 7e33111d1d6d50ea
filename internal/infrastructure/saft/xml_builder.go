package saft

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/nordkassa/kassa-api/internal/domain/entity"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
	pkgsaft "github.com/nordkassa/kassa-api/pkg/saft"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05" // schema wants local time, no offset
	periodLayout   = "2006-01"
)

// XMLBuilderService assembles the SAF-T Cash Register XML document.
type XMLBuilderService struct{}

// NewXMLBuilderService creates the builder.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build produces the pretty-printed UTF-8 audit file for the given context.
// Missing optional data (organization number, tips, article group codes,
// events, device) degrades to omitted elements or safe defaults; an empty
// session slice yields a valid file with zero journals and zero totals.
func (s *XMLBuilderService) Build(ctx *AuditFileBuildContext) ([]byte, error) {
	if ctx == nil || ctx.Store == nil {
		return nil, fmt.Errorf("saft: build context requires a store")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "AuditFile"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: pkgsaft.Namespace},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	s.writeHeader(enc, ctx)
	s.writeMasterData(enc, ctx.Store)
	s.writeGeneralLedgerEntries(enc, ctx)

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// writeHeader emits the file-level metadata block. The registration number is
// an empty element, not an omitted one, when the store has no organization
// number on file.
func (s *XMLBuilderService) writeHeader(enc *xml.Encoder, ctx *AuditFileBuildContext) {
	open(enc, "Header")
	writeEl(enc, "AuditFileVersion", pkgsaft.FileVersion)
	writeEl(enc, "AuditFileCountry", pkgsaft.CountryCode)
	writeEl(enc, "AuditFileDateCreated", ctx.Now.Format(dateTimeLayout))
	writeEl(enc, "SoftwareCompanyName", ctx.Software.CompanyName)
	writeEl(enc, "SoftwareName", ctx.Software.Name)
	writeEl(enc, "SoftwareID", ctx.Software.ID)
	writeEl(enc, "SoftwareVersion", ctx.Software.Version)
	writeEl(enc, "CompanyName", ctx.Store.Name)
	writeEl(enc, "CompanyRegistrationNumber", ctx.Store.OrganizationNumber())
	writeEl(enc, "TaxAccountingBasis", pkgsaft.AccountingBasisCash)
	writeEl(enc, "DefaultCurrencyCode", pkgsaft.CurrencyCode)
	writeEl(enc, "CreationDate", ctx.Now.Format(dateLayout))
	writeEl(enc, "TaxEntity", ctx.Store.Name)
	writeEl(enc, "SelectionCriteria", fmt.Sprintf("From: %s To: %s",
		ctx.FromDate.Format(dateLayout), ctx.ToDate.Format(dateLayout)))
	closeEl(enc, "Header")
}

// writeMasterData emits the cash register identity record.
func (s *XMLBuilderService) writeMasterData(enc *xml.Encoder, store *entity.Store) {
	open(enc, "MasterData")
	open(enc, "CashRegister")
	writeEl(enc, "CashRegisterID", strconv.FormatInt(store.ID, 10))
	writeEl(enc, "CashRegisterDescription", store.Name)
	closeEl(enc, "CashRegister")
	closeEl(enc, "MasterData")
}

// writeGeneralLedgerEntries emits the file totals followed by one journal per
// session. TotalCredit mirrors TotalDebit: every cash/card debit posting has a
// matching revenue credit posting of the same amount.
func (s *XMLBuilderService) writeGeneralLedgerEntries(enc *xml.Encoder, ctx *AuditFileBuildContext) {
	totalDebit := LedgerTotal(ctx.Sessions)

	open(enc, "GeneralLedgerEntries")
	writeEl(enc, "NumberOfEntries", strconv.Itoa(len(ctx.Sessions)))
	writeEl(enc, "TotalDebit", strconv.FormatInt(totalDebit, 10))
	writeEl(enc, "TotalCredit", strconv.FormatInt(totalDebit, 10))
	for _, session := range ctx.Sessions {
		s.writeJournal(enc, session, ctx.VAT)
	}
	closeEl(enc, "GeneralLedgerEntries")
}

// LedgerTotal sums the gross amount of all succeeded charges across the
// sessions; NumberOfEntries counts sessions, not charges.
func LedgerTotal(sessions []*entity.PosSession) int64 {
	var total int64
	for _, session := range sessions {
		for _, c := range session.SucceededCharges() {
			total += c.Amount
		}
	}
	return total
}

// writeJournal emits one journal with a single transaction per session.
func (s *XMLBuilderService) writeJournal(enc *xml.Encoder, session *entity.PosSession, vat domainsaft.VATPolicy) {
	endDate := session.OpenedAt
	if session.ClosedAt != nil {
		endDate = *session.ClosedAt
	}

	open(enc, "Journal")
	writeEl(enc, "JournalID", session.SessionNumber)
	writeEl(enc, "Description", "Kassesesjon "+session.SessionNumber)
	writeEl(enc, "JournalType", pkgsaft.JournalTypeCashRegister)
	writeEl(enc, "StartDate", session.OpenedAt.Format(dateLayout))
	writeEl(enc, "EndDate", endDate.Format(dateLayout))
	s.writeTransaction(enc, session, vat)
	closeEl(enc, "Journal")
}

func (s *XMLBuilderService) writeTransaction(enc *xml.Encoder, session *entity.PosSession, vat domainsaft.VATPolicy) {
	charges := session.SucceededCharges()

	code := pkgsaft.TransactionCodeSale
	if len(charges) > 0 && charges[0].TransactionCode != "" {
		code = charges[0].TransactionCode
	}

	open(enc, "Transaction")
	writeEl(enc, "TransactionID", strconv.FormatInt(session.ID, 10))
	writeEl(enc, "TransactionCode", code)
	writeEl(enc, "Period", session.OpenedAt.Format(periodLayout))
	writeEl(enc, "TransactionDate", session.OpenedAt.Format(dateLayout))
	writeEl(enc, "SourceID", session.DeviceName())
	writeEl(enc, "Description", "Kassesesjon "+session.SessionNumber)

	for _, charge := range charges {
		s.writeChargeLines(enc, charge, vat)
	}
	if len(session.Events) > 0 {
		s.writeEvents(enc, session.Events)
	}
	closeEl(enc, "Transaction")
}

// writeChargeLines emits the double-entry posting of one charge: a debit line
// against the payment account, an optional tip debit line, and the mirroring
// revenue credit line. Debit and credit are mutually exclusive per line.
func (s *XMLBuilderService) writeChargeLines(enc *xml.Encoder, charge *entity.ConnectedCharge, vat domainsaft.VATPolicy) {
	chargeID := strconv.FormatInt(charge.ID, 10)
	txDate := charge.TransactionDate().Format(dateLayout)

	description := charge.Description
	if description == "" {
		description = "Salg " + charge.StripeChargeID
	}

	// Debit: payment account receives the gross amount.
	open(enc, "Line")
	writeEl(enc, "RecordID", chargeID)
	writeEl(enc, "AccountID", domainsaft.AccountForPaymentMethod(charge.PaymentMethod))
	if charge.ArticleGroupCode != "" {
		writeEl(enc, "ArticleGroupCode", charge.ArticleGroupCode)
	}
	writeEl(enc, "SourceDocumentID", charge.StripeChargeID)
	writeEl(enc, "Description", description)
	writeEl(enc, "DebitAmount", strconv.FormatInt(charge.Amount, 10))
	writeEl(enc, "CreditAmount", "0")
	writeEl(enc, "TransactionDate", txDate)
	s.writeTaxInformation(enc, vat, charge.Amount)
	closeEl(enc, "Line")

	// Tip: separate debit against the tips account.
	if charge.TipAmount > 0 {
		open(enc, "Line")
		writeEl(enc, "RecordID", chargeID+"-tip")
		writeEl(enc, "AccountID", domainsaft.AccountTips)
		writeEl(enc, "ArticleGroupCode", pkgsaft.ArticleGroupCodeTip)
		writeEl(enc, "SourceDocumentID", charge.StripeChargeID)
		writeEl(enc, "Description", "Tips "+charge.StripeChargeID)
		writeEl(enc, "DebitAmount", strconv.FormatInt(charge.TipAmount, 10))
		writeEl(enc, "CreditAmount", "0")
		writeEl(enc, "TransactionDate", txDate)
		s.writeTaxInformation(enc, vat, charge.TipAmount)
		closeEl(enc, "Line")
	}

	// Credit: revenue posting mirrors the gross amount.
	open(enc, "Line")
	writeEl(enc, "RecordID", chargeID+"-credit")
	writeEl(enc, "AccountID", domainsaft.AccountRevenue)
	writeEl(enc, "SourceDocumentID", charge.StripeChargeID)
	writeEl(enc, "Description", description)
	writeEl(enc, "DebitAmount", "0")
	writeEl(enc, "CreditAmount", strconv.FormatInt(charge.Amount, 10))
	writeEl(enc, "TransactionDate", txDate)
	s.writeTaxInformation(enc, vat, charge.Amount)
	closeEl(enc, "Line")
}

func (s *XMLBuilderService) writeTaxInformation(enc *xml.Encoder, vat domainsaft.VATPolicy, grossMinor int64) {
	open(enc, "TaxInformation")
	writeEl(enc, "TaxCode", vat.TaxCode())
	writeEl(enc, "TaxPercentage", vat.TaxPercentage())
	writeEl(enc, "TaxAmount", strconv.FormatInt(vat.TaxAmount(grossMinor), 10))
	closeEl(enc, "TaxInformation")
}

// writeEvents emits the session's audit events. EventData keys are sorted so
// output stays byte-stable across runs.
func (s *XMLBuilderService) writeEvents(enc *xml.Encoder, events []*entity.PosEvent) {
	open(enc, "Events")
	for _, event := range events {
		open(enc, "Event")
		writeEl(enc, "EventCode", event.EventCode)
		writeEl(enc, "EventType", event.EventType)
		writeEl(enc, "Description", event.Description)
		writeEl(enc, "OccurredAt", event.OccurredAt.Format(dateTimeLayout))
		if data := event.DataMap(); len(data) > 0 {
			keys := make([]string, 0, len(data))
			for k := range data {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			open(enc, "EventData")
			for _, k := range keys {
				writeEl(enc, k, coerceString(data[k]))
			}
			closeEl(enc, "EventData")
		}
		closeEl(enc, "Event")
	}
	closeEl(enc, "Events")
}

// coerceString renders an event payload value as text. JSON numbers come back
// as float64; integral ones are printed without a fraction.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

func open(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: local}})
}

func closeEl(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: local}})
}

// writeEl writes <local>value</local>; the encoder escapes text content.
func writeEl(enc *xml.Encoder, local, value string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: local}})
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: local}})
}
