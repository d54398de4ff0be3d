package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"expensetrack/internal/report"
	"expensetrack/internal/util"
)

const (
	cellHeight  = 10
	dateColumn  = 35
	descColumn  = 70
	payColumn   = 40
	amtColumn   = 40
	footerSpace = 15
)

// PDF renders the summary as a single-page document: a title with the
// date range, a bordered table of entries and a bordered block with the
// named totals. The document is streamed to the writer, never stored.
func PDF(writer io.Writer, summary report.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerSpace)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := fmt.Sprintf("Expenses Summary from %s to %s",
		summary.Start.Format(dateLayout), summary.End.Format(dateLayout))
	pdf.CellFormat(0, cellHeight, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(dateColumn, cellHeight, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(descColumn, cellHeight, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(payColumn, cellHeight, "Payment Method", "1", 0, "C", false, 0, "")
	pdf.CellFormat(amtColumn, cellHeight, "Amount", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, expense := range summary.Entries {
		pdf.CellFormat(dateColumn, cellHeight, expense.Date().Format(dateLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(descColumn, cellHeight, expense.Description(), "1", 0, "", false, 0, "")
		pdf.CellFormat(payColumn, cellHeight, expense.PaymentMethod(), "1", 0, "", false, 0, "")
		pdf.CellFormat(amtColumn, cellHeight, util.FormatHKD(expense.Amount()), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(cellHeight / 2)

	for _, total := range namedTotals(summary) {
		pdf.CellFormat(dateColumn+descColumn+payColumn, cellHeight, total.Label, "1", 0, "", false, 0, "")
		pdf.CellFormat(amtColumn, cellHeight, util.FormatHKD(total.Amount), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	return nil
}
