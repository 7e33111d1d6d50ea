package reports

import "context"

// ReportPDFGenerator renders a POS report for printing or archiving.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *Report) ([]byte, error)
}
