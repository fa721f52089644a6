package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
)

// PayrollJobs generates the previous month's payroll on a configured day of the month.
type PayrollJobs struct {
	payrollSvc payroll.PayrollService
	clock      clock.Clock
	location   *time.Location
	day        int
}

func NewPayrollJobs(payrollSvc payroll.PayrollService, clk clock.Clock, loc *time.Location, day int) *PayrollJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollJobs{
		payrollSvc: payrollSvc,
		clock:      clk,
		location:   loc,
		day:        day,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_monthly_payroll", time.Hour, j.GenerateMonthlyPayroll)
}

// GenerateMonthlyPayroll is a no-op except on the configured day. Generation skips
// employees that already have a record, so repeated runs on that day are harmless.
func (j *PayrollJobs) GenerateMonthlyPayroll(ctx context.Context) error {
	now := j.clock.Now().In(j.location)
	if now.Day() != j.day {
		return nil
	}

	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, j.location).AddDate(0, -1, 0)
	result, err := j.payrollSvc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		PeriodMonth: int(prev.Month()),
		PeriodYear:  prev.Year(),
	})
	if err != nil {
		return err
	}

	if result.Generated > 0 {
		slog.Info("cron: monthly payroll generated",
			"month", result.PeriodMonth,
			"year", result.PeriodYear,
			"generated", result.Generated,
		)
	}
	return nil
}
