package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/service/consolidation"
)

type ConsolidationJobs struct {
	service *consolidation.Service
}

func NewConsolidationJobs(service *consolidation.Service) *ConsolidationJobs {
	return &ConsolidationJobs{service: service}
}

func (j *ConsolidationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("consolidate_previous_day", 1*time.Hour, j.ConsolidatePreviousDay)
	scheduler.AddJob("report_pending_consolidation", 1*time.Hour, j.ReportPendingConsolidation)
}

// ConsolidatePreviousDay runs the schedule-aware flow over yesterday once
// the day has fully closed in every timezone the organization operates in.
func (j *ConsolidationJobs) ConsolidatePreviousDay(ctx context.Context) error {
	// Only run in the early morning window (01:00-01:59 UTC)
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	slog.Info("Cron: Starting previous-day consolidation", "date", yesterday.Format("2006-01-02"))

	summary, err := j.service.ConsolidateDayWithShifts(ctx, yesterday, nil)
	if err != nil {
		return fmt.Errorf("failed to consolidate previous day: %w", err)
	}

	slog.Info("Cron: Previous-day consolidation finished",
		"date", yesterday.Format("2006-01-02"),
		"employees", summary.TotalEmployees,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return nil
}

// ReportPendingConsolidation logs how many employments clocked events
// yesterday but still have no timesheet row, so gaps surface before payroll
// cutoff.
func (j *ConsolidationJobs) ReportPendingConsolidation(ctx context.Context) error {
	// Run after the consolidation window (02:00-02:59 UTC)
	if time.Now().UTC().Hour() != 2 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	report, err := j.service.PendingConsolidation(ctx, &yesterday)
	if err != nil {
		return fmt.Errorf("failed to build pending report: %w", err)
	}

	if report.Pending > 0 {
		slog.Warn("Cron: Employments still pending consolidation",
			"date", report.Date.Format("2006-01-02"),
			"with_events", report.EmployeesWithEvents,
			"with_timesheets", report.EmployeesWithTimesheets,
			"pending", report.Pending,
		)
	} else {
		slog.Info("Cron: No pending consolidation", "date", report.Date.Format("2006-01-02"))
	}
	return nil
}
