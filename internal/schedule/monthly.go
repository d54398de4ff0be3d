package schedule

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"expensetrack/internal/export"
	"expensetrack/internal/logger"
	"expensetrack/internal/report"
	"expensetrack/internal/storage"
	"expensetrack/internal/util"
)

// ReportSender is the delivery side of the monthly job; the mailer
// package provides the SMTP implementation.
type ReportSender interface {
	SendReport(to, subject, body string, pdf []byte, filename string) error
}

// MonthlyReportJob aggregates the current month for every user, renders
// a PDF summary per user and mails it to the configured destination.
// One user's failure does not stop the others; every failure is
// reported to the scheduler for logging.
func MonthlyReportJob(
	stor storage.Storage,
	sender ReportSender,
	to string,
	log *logger.Logger,
) Job {
	return func(now time.Time) error {
		ctx := context.Background()
		start, end := util.MonthRange(now)

		users, err := stor.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users for monthly report: %w", err)
		}

		var failures []error
		for _, user := range users {
			if sendErr := sendUserReport(ctx, stor, sender, to, user, start, end); sendErr != nil {
				log.Error("monthly report failed for user",
					"user_id", user.ID(),
					"error", sendErr,
				)
				failures = append(failures, sendErr)
				continue
			}

			log.Info("monthly report sent", "user_id", user.ID(), "to", to)
		}

		return errors.Join(failures...)
	}
}

func sendUserReport(
	ctx context.Context,
	stor storage.Storage,
	sender ReportSender,
	to string,
	user storage.User,
	start, end time.Time,
) error {
	summary, err := report.Aggregate(ctx, stor, user.ID(), start, end)
	if err != nil {
		return fmt.Errorf("failed to aggregate month: %w", err)
	}

	var pdf bytes.Buffer
	if err = export.PDF(&pdf, summary); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	subject := fmt.Sprintf("Expenses Summary %s %d - %s",
		start.Month().String(), start.Year(), user.Username())
	body := fmt.Sprintf("Monthly expense summary for %s, %s to %s. Total: %s.",
		user.Username(),
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		util.FormatHKD(summary.RangeTotal))

	return sender.SendReport(to, subject, body, pdf.Bytes(), export.Filename(summary, "pdf"))
}
