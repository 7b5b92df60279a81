package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/config"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/service/consolidation"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/service/export"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		dateFlag   = flag.String("date", "", "work date to consolidate (YYYY-MM-DD, default yesterday)")
		fromFlag   = flag.String("from", "", "start of a date range (YYYY-MM-DD)")
		toFlag     = flag.String("to", "", "end of a date range (YYYY-MM-DD, inclusive)")
		branchFlag = flag.String("branch", "", "restrict to one branch ID")
		withShifts = flag.Bool("with-shifts", false, "reconcile against the published shift schedule")
		pending    = flag.Bool("pending", false, "print the pending-consolidation report instead of consolidating")
		exportPath = flag.String("export", "", "write the day's timesheets to this XLSX file after consolidating")
		daemon     = flag.Bool("daemon", false, "run as a scheduled job instead of a one-shot batch")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	eventRepo := postgresql.NewEventRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	engineCfg := timecalc.Config{
		StandardDailyMinutes: cfg.Consolidation.StandardDailyMinutes,
		NightStartHour:       cfg.Consolidation.NightStartHour,
		NightEndHour:         cfg.Consolidation.NightEndHour,
		LateThresholdMinutes: cfg.Consolidation.LateThresholdMinutes,
		WorkDaysPerWeek:      cfg.Consolidation.WorkDaysPerWeek,
	}

	service := consolidation.NewService(cfg.App.OrganizationID, engineCfg, db, eventRepo, shiftRepo, timesheetRepo)
	exportService := export.NewExportService(cfg.App.OrganizationID, timesheetRepo)

	if *daemon {
		runDaemon(service)
		return
	}

	ctx := context.Background()

	var branchID *string
	if *branchFlag != "" {
		branchID = branchFlag
	}

	date := time.Now().UTC().AddDate(0, 0, -1)
	if *dateFlag != "" {
		date, err = time.Parse(dateLayout, *dateFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Invalid -date:", err)
			os.Exit(1)
		}
	}

	if *pending {
		report, err := service.PendingConsolidation(ctx, &date)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Pending report failed:", err)
			os.Exit(1)
		}
		fmt.Printf("Pending consolidation for %s: with events: %d, with timesheets: %d, pending: %d\n",
			report.Date.Format(dateLayout),
			report.EmployeesWithEvents,
			report.EmployeesWithTimesheets,
			report.Pending,
		)
		return
	}

	summary, err := runConsolidation(ctx, service, date, *fromFlag, *toFlag, branchID, *withShifts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Consolidation failed:", err)
		os.Exit(1)
	}

	fmt.Printf("Consolidation completed. Employees: %d, Created: %d, Updated: %d, Skipped: %d, Errors: %d\n",
		summary.TotalEmployees,
		summary.Created,
		summary.Updated,
		summary.Skipped,
		summary.Errors,
	)
	for _, r := range summary.Results {
		if r.Status == timesheet.ResultError || r.Status == timesheet.ResultSkipped {
			fmt.Printf("  %s: %s (%s)\n", r.EmploymentID, r.Status, r.Message)
		}
	}

	if *exportPath != "" {
		count, err := exportService.ExportDay(ctx, date, *exportPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Export failed:", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d timesheets to %s\n", count, *exportPath)
	}
}

func runConsolidation(
	ctx context.Context,
	service *consolidation.Service,
	date time.Time,
	fromStr, toStr string,
	branchID *string,
	withShifts bool,
) (timesheet.ConsolidationSummary, error) {
	if fromStr != "" || toStr != "" {
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return timesheet.ConsolidationSummary{}, fmt.Errorf("invalid -from: %w", err)
		}
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return timesheet.ConsolidationSummary{}, fmt.Errorf("invalid -to: %w", err)
		}
		return service.ConsolidateDateRange(ctx, from, to, branchID)
	}

	if withShifts {
		return service.ConsolidateDayWithShifts(ctx, date, branchID)
	}
	return service.ConsolidateDay(ctx, date, branchID)
}

func runDaemon(service *consolidation.Service) {
	scheduler := cron.NewScheduler()
	cron.NewConsolidationJobs(service).RegisterJobs(scheduler)
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	scheduler.Stop()
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
