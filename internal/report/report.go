// Package report classifies a user's active expenses in a date range
// into mutually exclusive buckets and computes the per-bucket totals
// shown on the dashboard, the history view, the exports and the monthly
// email. Every call site goes through Generate so the numbers can never
// drift apart.
package report

import (
	"context"
	"strings"
	"time"

	"expensetrack/internal/storage"
)

// Bucket identifies one of the mutually exclusive categories an active
// expense belongs to.
type Bucket string

const (
	// BucketTBAS holds expenses whose description is exactly "TB(AS)".
	BucketTBAS Bucket = "tb_as"
	// BucketTB holds expenses whose description is exactly "TB".
	BucketTB Bucket = "tb"
	// BucketTBPrefix holds expenses whose description starts with "TB"
	// but matched neither exact rule (e.g. "TB-taxi").
	BucketTBPrefix Bucket = "tb_prefix"
	// BucketOther holds everything else.
	BucketOther Bucket = "other"
)

const tbPrefix = "TB"

// rules are evaluated top to bottom, first match wins. Keeping the
// policy as an ordered list guarantees the buckets partition the
// expense set: each expense lands in exactly one bucket, so the bucket
// sums always reconcile with the range total.
var rules = []struct {
	match  func(description string) bool
	bucket Bucket
}{
	{func(d string) bool { return d == "TB(AS)" }, BucketTBAS},
	{func(d string) bool { return d == tbPrefix }, BucketTB},
	{func(d string) bool { return strings.HasPrefix(d, tbPrefix) }, BucketTBPrefix},
	{func(string) bool { return true }, BucketOther},
}

// Classify returns the bucket an expense description falls into.
func Classify(description string) Bucket {
	for _, rule := range rules {
		if rule.match(description) {
			return rule.bucket
		}
	}
	// The catch-all rule always matches.
	return BucketOther
}

// Summary is the aggregate for one owner and date range. All totals are
// cents and zero-valued when no expense matched. AllTBTotal is the
// derived figure TBASTotal + TBTotal + TBPrefixTotal; the four bucket
// totals always sum to RangeTotal.
type Summary struct {
	Start   time.Time
	End     time.Time
	Entries []storage.Expense

	RangeTotal    int64
	AllTBTotal    int64
	TBASTotal     int64
	TBTotal       int64
	TBPrefixTotal int64
	OtherTotal    int64
}

// Generate computes the summary for a slice of expenses. It is a pure
// function over one ListExpensesInRange result, so entries and totals
// always come from the same store snapshot.
func Generate(start, end time.Time, expenses []storage.Expense) Summary {
	summary := Summary{
		Start:   start,
		End:     end,
		Entries: expenses,
	}

	for _, expense := range expenses {
		amount := expense.Amount()
		summary.RangeTotal += amount

		switch Classify(expense.Description()) {
		case BucketTBAS:
			summary.TBASTotal += amount
		case BucketTB:
			summary.TBTotal += amount
		case BucketTBPrefix:
			summary.TBPrefixTotal += amount
		case BucketOther:
			summary.OtherTotal += amount
		}
	}

	summary.AllTBTotal = summary.TBASTotal + summary.TBTotal + summary.TBPrefixTotal

	return summary
}

// Aggregate fetches the owner's active expenses between start and end,
// both inclusive, and summarizes them.
func Aggregate(
	ctx context.Context,
	stor storage.Storage,
	userID int64,
	start, end time.Time,
) (Summary, error) {
	expenses, err := stor.ListExpensesInRange(ctx, userID, start, end, false)
	if err != nil {
		return Summary{}, err
	}

	return Generate(start, end, expenses), nil
}
