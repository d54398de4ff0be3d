package report_test

import (
	"context"
	"testing"
	"time"

	"expensetrack/internal/report"
	"expensetrack/internal/storage"
	"expensetrack/internal/testutil"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestClassify(t *testing.T) {
	tests := []struct {
		description string
		bucket      report.Bucket
	}{
		{"TB(AS)", report.BucketTBAS},
		{"TB", report.BucketTB},
		{"TB-taxi", report.BucketTBPrefix},
		{"TB(AS) extra", report.BucketTBPrefix},
		{"TBx", report.BucketTBPrefix},
		{"Lunch", report.BucketOther},
		{"tb", report.BucketOther},
		{"", report.BucketOther},
		{" TB", report.BucketOther},
	}

	for _, tt := range tests {
		if got := report.Classify(tt.description); got != tt.bucket {
			t.Errorf("Classify(%q) = %s, expected %s", tt.description, got, tt.bucket)
		}
	}
}

func expense(id int64, date time.Time, description string, amount int64) storage.Expense {
	return storage.NewExpense(id, 1, date, description, "", amount, date, date, nil)
}

func TestGenerateWeekScenario(t *testing.T) {
	start := day(t, "2024-06-03")
	end := day(t, "2024-06-09")

	expenses := []storage.Expense{
		expense(1, day(t, "2024-06-03"), "TB(AS)", 10000),
		expense(2, day(t, "2024-06-04"), "TB", 5000),
		expense(3, day(t, "2024-06-05"), "TB-extra", 2500),
		expense(4, day(t, "2024-06-06"), "Lunch", 3000),
	}

	summary := report.Generate(start, end, expenses)

	if summary.RangeTotal != 20500 {
		t.Errorf("expected range total 205.00, got %d", summary.RangeTotal)
	}
	if summary.TBASTotal != 10000 {
		t.Errorf("expected TB(AS) total 100.00, got %d", summary.TBASTotal)
	}
	if summary.TBTotal != 5000 {
		t.Errorf("expected TB total 50.00, got %d", summary.TBTotal)
	}
	if summary.TBPrefixTotal != 2500 {
		t.Errorf("expected TB prefix total 25.00, got %d", summary.TBPrefixTotal)
	}
	if summary.AllTBTotal != 17500 {
		t.Errorf("expected all TB total 175.00, got %d", summary.AllTBTotal)
	}
	if summary.OtherTotal != 3000 {
		t.Errorf("expected other total 30.00, got %d", summary.OtherTotal)
	}
	if len(summary.Entries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(summary.Entries))
	}
}

// The buckets partition the expense set: their sums must reconcile with
// the range total exactly, and the all-TB figure must equal the three
// TB buckets combined.
func TestGeneratePartitionInvariant(t *testing.T) {
	start := day(t, "2024-06-03")
	end := day(t, "2024-06-09")

	descriptions := []string{
		"TB(AS)", "TB", "TB-extra", "TB(AS) note", "TBB", "Lunch", "Bus", "", "tb(as)",
	}

	expenses := make([]storage.Expense, 0, len(descriptions))
	for i, description := range descriptions {
		expenses = append(expenses, expense(int64(i+1), start, description, int64((i+1)*137)))
	}

	summary := report.Generate(start, end, expenses)

	buckets := summary.TBASTotal + summary.TBTotal + summary.TBPrefixTotal + summary.OtherTotal
	if buckets != summary.RangeTotal {
		t.Errorf("bucket sums %d do not reconcile with range total %d", buckets, summary.RangeTotal)
	}

	if summary.AllTBTotal != summary.TBASTotal+summary.TBTotal+summary.TBPrefixTotal {
		t.Errorf("all TB total %d does not equal its components", summary.AllTBTotal)
	}
}

func TestGenerateEmptyRange(t *testing.T) {
	summary := report.Generate(day(t, "2024-06-03"), day(t, "2024-06-09"), nil)

	if summary.RangeTotal != 0 || summary.AllTBTotal != 0 || summary.TBASTotal != 0 ||
		summary.TBTotal != 0 || summary.TBPrefixTotal != 0 || summary.OtherTotal != 0 {
		t.Errorf("expected all totals to default to zero, got %+v", summary)
	}
	if summary.Entries != nil && len(summary.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(summary.Entries))
	}
}

func TestAggregateExcludesDeleted(t *testing.T) {
	stor := testutil.SetupTestStorage(t)
	ctx := context.Background()

	user, err := stor.CreateUser(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	seed := []struct {
		date        string
		description string
		amount      int64
	}{
		{"2024-06-03", "TB(AS)", 10000},
		{"2024-06-04", "TB", 5000},
		{"2024-06-05", "TB-extra", 2500},
		{"2024-06-06", "Lunch", 3000},
	}

	ids := map[string]int64{}
	for _, e := range seed {
		inserted, insertErr := stor.InsertExpense(ctx, user.ID(), day(t, e.date), e.description, "", e.amount)
		if insertErr != nil {
			t.Fatalf("failed to insert %q: %v", e.description, insertErr)
		}
		ids[e.description] = inserted.ID()
	}

	start, end := day(t, "2024-06-03"), day(t, "2024-06-09")

	summary, err := report.Aggregate(ctx, stor, user.ID(), start, end)
	if err != nil {
		t.Fatalf("failed to aggregate: %v", err)
	}
	if summary.RangeTotal != 20500 {
		t.Fatalf("expected range total 20500 before delete, got %d", summary.RangeTotal)
	}

	if err = stor.SoftDeleteExpense(ctx, ids["TB(AS)"], user.ID()); err != nil {
		t.Fatalf("failed to delete expense: %v", err)
	}

	summary, err = report.Aggregate(ctx, stor, user.ID(), start, end)
	if err != nil {
		t.Fatalf("failed to aggregate after delete: %v", err)
	}

	if summary.RangeTotal != 10500 {
		t.Errorf("expected range total 105.00 after delete, got %d", summary.RangeTotal)
	}
	if summary.TBASTotal != 0 {
		t.Errorf("expected TB(AS) total 0.00 after delete, got %d", summary.TBASTotal)
	}
	if summary.AllTBTotal != 7500 {
		t.Errorf("expected all TB total 75.00 after delete, got %d", summary.AllTBTotal)
	}
	if len(summary.Entries) != 3 {
		t.Errorf("expected 3 entries after delete, got %d", len(summary.Entries))
	}
	for _, entry := range summary.Entries {
		if entry.DeletedAt() != nil {
			t.Errorf("deleted expense %q leaked into entries", entry.Description())
		}
	}
}
