// Package schedule owns the background timer that emails the monthly
// report. The scheduler is an explicitly constructed service with a
// Start/Stop lifecycle; it holds no global state and never shares locks
// with request handling.
package schedule

import (
	"time"

	"github.com/robfig/cron/v3"

	"expensetrack/internal/logger"
	"expensetrack/internal/util"
)

// Job runs one scheduled report cycle. Errors are logged and dropped;
// the next attempt happens on the next scheduled tick, never earlier.
type Job func(now time.Time) error

type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
}

func New(logger *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// AddMonthlyJob registers a job under a daily cron spec (e.g.
// "59 23 * * *") that only fires on the last calendar day of the month.
// Standard cron has no "last day" field, so the job runs the check
// itself.
func (s *Scheduler) AddMonthlyJob(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.runIfLastDay(time.Now(), job)
	})
	return err
}

func (s *Scheduler) runIfLastDay(now time.Time, job Job) {
	if !util.LastDayOfMonth(now) {
		return
	}

	s.logger.Info("running scheduled monthly report", "date", now.Format("2006-01-02"))
	if err := job(now); err != nil {
		// A failed cycle must never take down the serving process.
		s.logger.Error("scheduled monthly report failed", "error", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
