// Package report renders a week or month aggregate for one user to a
// terminal with color-coded totals.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	internalReport "expensetrack/internal/report"
	"expensetrack/internal/storage"
	"expensetrack/internal/util"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

type Options struct {
	Username string
	Period   string
	Verbose  bool
}

// Run aggregates the user's current week or month and writes the
// formatted report to out.
func Run(ctx context.Context, stor storage.Storage, out io.Writer, opts Options) error {
	if opts.Username == "" {
		return fmt.Errorf("username is required")
	}

	user, err := stor.GetUserByUsername(ctx, opts.Username)
	if err != nil {
		return fmt.Errorf("unable to find user %q: %w", opts.Username, err)
	}

	now := time.Now()
	var start, end time.Time
	switch opts.Period {
	case PeriodWeek, "":
		start, end = util.WeekRange(now)
	case PeriodMonth:
		start, end = util.MonthRange(now)
	default:
		return fmt.Errorf("unsupported period %q", opts.Period)
	}

	summary, err := internalReport.Aggregate(ctx, stor, user.ID(), start, end)
	if err != nil {
		return fmt.Errorf("unable to aggregate expenses: %w", err)
	}

	render(out, opts, summary)
	return nil
}

func render(out io.Writer, opts Options, summary internalReport.Summary) {
	title := fmt.Sprintf("Expenses for %s from %s to %s",
		opts.Username,
		summary.Start.Format("2006-01-02"),
		summary.End.Format("2006-01-02"),
	)
	fmt.Fprintln(out, util.ColorOutput(title, "bold", "underline"))
	fmt.Fprintln(out)

	if opts.Verbose {
		for _, expense := range summary.Entries {
			fmt.Fprintf(out, "%s  %-30s %s\n",
				expense.Date().Format("2006-01-02"),
				expense.Description(),
				util.FormatHKD(expense.Amount()),
			)
		}
		fmt.Fprintln(out)
	}

	buckets := map[string]int64{
		"Total TB(AS)":     summary.TBASTotal,
		"Total TB":         summary.TBTotal,
		"Total TB (other)": summary.TBPrefixTotal,
		"Others Total":     summary.OtherTotal,
		"All TB":           summary.AllTBTotal,
	}

	labels := maps.Keys(buckets)
	sort.Strings(labels)

	for _, label := range labels {
		fmt.Fprintf(out, "%s: %s\n", label, util.ColorOutput(util.FormatHKD(buckets[label]), "green"))
	}

	fmt.Fprintf(out, "%s: %s\n", "Total", util.ColorOutput(util.FormatHKD(summary.RangeTotal), "red", "bold"))
}
