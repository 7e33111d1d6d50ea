// Package pdf renders the printable X/Z POS report.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Store name + org.nr   │  X/Z-RAPPORT + session no. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SESSION: device / cashier / opened / closed                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: payment method | account | count | amount           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: gross / tips / of which VAT                        │
//	│  FOOTER: events, nullinnslag, generated-at                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nordkassa/kassa-api/internal/application/dto"
	"github.com/nordkassa/kassa-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implements reports.ReportPDFGenerator using Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator builds the generator.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF renders the report and returns its bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, report *reports.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(reportTitle(report), true).
		WithAuthor(report.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sessionRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range methodRows(report) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportTitle(report *reports.Report) string {
	return report.Type + "-rapport " + report.SessionNumber
}

// headerRow: store identity left, report type + session number right.
func headerRow(report *reports.Report) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(report.Type+"-RAPPORT", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Kassesesjon "+report.SessionNumber, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// sessionRow: device, cashier and open/close timestamps.
func sessionRow(report *reports.Report) core.Row {
	closed := "-"
	if report.ClosedAt != nil {
		closed = report.ClosedAt.Format("02.01.2006 15:04")
	}
	cashier := report.CashierName
	if cashier == "" {
		cashier = "-"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SESJON", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Kasse: %s   |   Kasserer: %s", report.DeviceName, cashier),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Åpnet: %s   |   Lukket: %s",
				report.OpenedAt.Format("02.01.2006 15:04"), closed),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Betalingsmiddel", 4, align.Left),
		h("Konto", 2, align.Center),
		h("Antall", 2, align.Center),
		h("Beløp (NOK)", 4, align.Right),
	)
}

func methodRows(report *reports.Report) []core.Row {
	labels := map[string]string{
		"cash":  "Kontant",
		"card":  "Kort",
		"other": "Annet",
	}
	result := make([]core.Row, 0, len(report.PaymentMethods))
	for _, m := range report.PaymentMethods {
		label := labels[m.Method]
		if label == "" {
			label = m.Method
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(m.AccountID, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(m.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(dto.FormatNOK(m.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(report *reports.Report) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("BRUTTO OMSETNING:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(dto.FormatNOK(report.GrossTotal), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	})
	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Antall salg:"),
			label("Tips:"),
			label("Herav mva (25%):"),
			grandLabel,
		),
		col.New(4).Add(
			value(strconv.Itoa(report.SalesCount)),
			value(dto.FormatNOK(report.TipsTotal)),
			value(dto.FormatNOK(report.VATTotal)),
			grandValue,
		),
		col.New(1),
	)
}

func footerRow(report *reports.Report) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Hendelser: %d   |   Nullinnslag: %d   |   Refundert: %d",
				report.EventCount, report.NullinnslagCount, report.RefundedCount),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Generert: "+report.GeneratedAt.Format("02.01.2006 15:04:05"),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}
