// Package export renders a report summary as a CSV or PDF download.
// Both formats show the same entry rows and the same named totals; the
// numbers always come from a single Summary so they cannot disagree.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"expensetrack/internal/report"
	"expensetrack/internal/util"
)

const dateLayout = "2006-01-02"

type namedTotal struct {
	Label  string
	Amount int64
}

// namedTotals is the display order shared by the CSV totals block, the
// PDF summary table and the email report.
func namedTotals(summary report.Summary) []namedTotal {
	return []namedTotal{
		{"Total", summary.RangeTotal},
		{"Total TB(AS)", summary.TBASTotal},
		{"Total TB", summary.TBTotal},
		{"Total TB (other)", summary.TBPrefixTotal},
		{"Others Total", summary.OtherTotal},
		{"All TB", summary.AllTBTotal},
	}
}

// CSV writes the summary as Date,Description,Payment Method,Amount
// rows followed by a blank record and one row per named total.
func CSV(writer io.Writer, summary report.Summary) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	records := make([][]string, 0, len(summary.Entries)+8)

	records = append(records, []string{"Date", "Description", "Payment Method", "Amount"})

	for _, expense := range summary.Entries {
		records = append(records, []string{
			expense.Date().Format(dateLayout),
			expense.Description(),
			expense.PaymentMethod(),
			util.FormatMoney(expense.Amount(), "", "."),
		})
	}

	records = append(records, []string{"", "", "", ""})

	for _, total := range namedTotals(summary) {
		records = append(records, []string{total.Label, "", "", util.FormatHKD(total.Amount)})
	}

	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

// Filename builds the attachment name for a summary download, e.g.
// "expenses_summary_from_2024-06-03_to_2024-06-09.csv".
func Filename(summary report.Summary, extension string) string {
	return fmt.Sprintf("expenses_summary_from_%s_to_%s.%s",
		summary.Start.Format(dateLayout), summary.End.Format(dateLayout), extension)
}
