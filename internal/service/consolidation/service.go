package consolidation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/shift"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const msgNoEntryRecord = "no entry record"

// Service consolidates raw attendance events into per-employment daily
// timesheets for one organization.
type Service struct {
	organizationID string
	cfg            timecalc.Config
	db             *database.DB
	eventRepo      event.Repository
	shiftRepo      shift.Repository
	timesheetRepo  timesheet.Repository
}

// NewService builds the orchestrator. db may be nil when the repositories
// are not SQL-backed; the schedule-aware flow then performs its two writes
// without a shared transaction.
func NewService(
	organizationID string,
	cfg timecalc.Config,
	db *database.DB,
	eventRepo event.Repository,
	shiftRepo shift.Repository,
	timesheetRepo timesheet.Repository,
) *Service {
	return &Service{
		organizationID: organizationID,
		cfg:            cfg,
		db:             db,
		eventRepo:      eventRepo,
		shiftRepo:      shiftRepo,
		timesheetRepo:  timesheetRepo,
	}
}

// PendingReport reconciles how many employments clocked events on a day
// against how many already have a timesheet row.
type PendingReport struct {
	Date                    time.Time
	EmployeesWithEvents     int
	EmployeesWithTimesheets int
	Pending                 int
}

// ConsolidateDay runs the unscheduled flow for one work date. Store read
// failures abort the call; any per-employment failure is recorded in the
// summary and processing continues.
func (s *Service) ConsolidateDay(ctx context.Context, date time.Time, branchID *string) (timesheet.ConsolidationSummary, error) {
	var summary timesheet.ConsolidationSummary

	events, err := s.eventRepo.ListByDate(ctx, s.organizationID, date, branchID)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch events: %w", err)
	}

	grouped := event.GroupByEmployment(events)
	s.annotateNames(ctx, grouped)

	for _, employmentID := range event.EmploymentIDs(grouped) {
		summary.Results = append(summary.Results, s.consolidateEmployment(ctx, date, employmentID, grouped[employmentID]))
	}

	summary.Tally()
	slog.Info("consolidated day",
		"date", date.Format("2006-01-02"),
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return summary, nil
}

// consolidateEmployment derives and upserts one employment's aggregate for
// the unscheduled flow.
func (s *Service) consolidateEmployment(ctx context.Context, date time.Time, employmentID string, bucket []event.AttendanceEvent) timesheet.ConsolidationResult {
	result := timesheet.ConsolidationResult{EmploymentID: employmentID}
	if len(bucket) > 0 {
		result.EmployeeName = bucket[0].EmployeeName
	}

	firstIn := event.FirstOfType(bucket, event.TypeCheckIn)
	if firstIn == nil {
		result.Status = timesheet.ResultSkipped
		result.Message = msgNoEntryRecord
		return result
	}
	lastOut := event.LastOfType(bucket, event.TypeCheckOut)

	var weeklyHours *float64
	if len(bucket) > 0 {
		weeklyHours = bucket[0].WorkHoursPerWeek
	}

	ts := timesheet.Timesheet{
		OrganizationID:   s.organizationID,
		EmploymentID:     employmentID,
		WorkDate:         dateOnly(date),
		ScheduledMinutes: s.cfg.ScheduledMinutesFromWeeklyHours(weeklyHours),
		BreakMinutes:     timecalc.PairBreaks(bucket),
		FirstCheckIn:     &firstIn.OccurredAt,
		Status:           timesheet.StatusOpen,
	}

	if lastOut != nil {
		ts.LastCheckOut = &lastOut.OccurredAt
		ts.WorkedMinutes = int(lastOut.OccurredAt.Sub(firstIn.OccurredAt).Minutes())
		ts.NightMinutes = s.cfg.NightMinutes(firstIn.OccurredAt, lastOut.OccurredAt)
	}

	ts.NetWorkedMinutes = ts.WorkedMinutes - ts.BreakMinutes
	if ts.NetWorkedMinutes < 0 {
		ts.NetWorkedMinutes = 0
	}
	ts.OvertimeMinutes = timecalc.OvertimeMinutes(ts.NetWorkedMinutes, ts.ScheduledMinutes)

	s.upsert(ctx, ts, &result)
	return result
}

// ConsolidateDayWithShifts runs the schedule-aware flow for one work date:
// reconciles assignments against actual events, applies the same idempotent
// upsert rule, and writes the derived status back onto each assignment.
func (s *Service) ConsolidateDayWithShifts(ctx context.Context, date time.Time, branchID *string) (timesheet.ConsolidationSummary, error) {
	var summary timesheet.ConsolidationSummary

	var (
		assignments []shift.Assignment
		events      []event.AttendanceEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.shiftRepo.ListAssignmentsByDate(gctx, s.organizationID, date, branchID)
		if err != nil {
			return fmt.Errorf("failed to fetch shift assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.ListByDate(gctx, s.organizationID, date, branchID)
		if err != nil {
			return fmt.Errorf("failed to fetch events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return summary, err
	}

	grouped := event.GroupByEmployment(events)
	s.annotateNames(ctx, grouped)

	for _, cmp := range ReconcileShifts(s.cfg, assignments, grouped) {
		summary.Results = append(summary.Results, s.consolidateComparison(ctx, date, cmp))
	}

	summary.Tally()
	slog.Info("consolidated day with shifts",
		"date", date.Format("2006-01-02"),
		"assignments", len(assignments),
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return summary, nil
}

// consolidateComparison upserts one reconciled assignment and patches the
// assignment status. A locked timesheet skips both writes.
func (s *Service) consolidateComparison(ctx context.Context, date time.Time, cmp timesheet.ShiftComparisonResult) timesheet.ConsolidationResult {
	result := timesheet.ConsolidationResult{
		EmploymentID: cmp.EmploymentID,
		EmployeeName: cmp.EmployeeName,
	}

	status := timesheet.StatusOpen
	if cmp.AttendanceStatus == timesheet.AttendanceAbsent {
		status = timesheet.StatusAbsent
	}

	ts := timesheet.Timesheet{
		OrganizationID:        s.organizationID,
		EmploymentID:          cmp.EmploymentID,
		WorkDate:              dateOnly(date),
		ScheduledMinutes:      cmp.ScheduledMinutes,
		WorkedMinutes:         cmp.WorkedMinutes + cmp.BreakMinutes,
		BreakMinutes:          cmp.BreakMinutes,
		NetWorkedMinutes:      cmp.WorkedMinutes,
		OvertimeMinutes:       cmp.OvertimeMinutes,
		NightMinutes:          cmp.NightMinutes,
		LateMinutes:           cmp.LateMinutes,
		EarlyDepartureMinutes: cmp.EarlyDepartureMinutes,
		FirstCheckIn:          cmp.ActualCheckIn,
		LastCheckOut:          cmp.ActualCheckOut,
		Status:                status,
	}

	writes := func(ctx context.Context) error {
		s.upsert(ctx, ts, &result)
		if result.Status == timesheet.ResultSkipped || result.Status == timesheet.ResultError {
			return nil
		}
		return s.shiftRepo.UpdateAssignmentStatus(ctx, s.organizationID, cmp.EmploymentID, dateOnly(date), assignmentStatusFor(cmp.AttendanceStatus))
	}

	var err error
	if s.db != nil {
		// Both writes commit together: a failed status patch rolls the
		// timesheet upsert back.
		err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			return writes(context.WithValue(ctx, "tx", tx))
		})
	} else {
		err = writes(ctx)
	}
	if err != nil {
		slog.Error("failed to update assignment status",
			"employment_id", cmp.EmploymentID,
			"date", date.Format("2006-01-02"),
			"error", err,
		)
		result.Status = timesheet.ResultError
		result.Message = fmt.Sprintf("failed to update assignment status: %v", err)
		result.TimesheetID = ""
	}
	return result
}

// upsert applies the idempotent create/update/skip rule for one timesheet
// and records the outcome on result.
func (s *Service) upsert(ctx context.Context, ts timesheet.Timesheet, result *timesheet.ConsolidationResult) {
	existing, err := s.timesheetRepo.GetByEmploymentAndDate(ctx, ts.OrganizationID, ts.EmploymentID, ts.WorkDate)
	if err != nil {
		result.Status = timesheet.ResultError
		result.Message = fmt.Sprintf("failed to read timesheet: %v", err)
		return
	}

	outcome := timesheet.ResultCreated
	if existing != nil {
		if existing.Status.Closed() {
			result.Status = timesheet.ResultSkipped
			result.Message = fmt.Sprintf("timesheet is %s", existing.Status)
			result.TimesheetID = existing.ID
			return
		}
		ts.ID = existing.ID
		outcome = timesheet.ResultUpdated
	}

	id, err := s.timesheetRepo.Upsert(ctx, ts)
	if err != nil {
		// A concurrent approval between the read and the write trips the
		// store's conditional update; that is a skip, not a failure.
		if errors.Is(err, timesheet.ErrTimesheetClosed) {
			result.Status = timesheet.ResultSkipped
			result.Message = "timesheet was closed concurrently"
			return
		}
		result.Status = timesheet.ResultError
		result.Message = fmt.Sprintf("failed to upsert timesheet: %v", err)
		return
	}

	result.Status = outcome
	result.TimesheetID = id
}

// ConsolidateDateRange runs ConsolidateDay once per calendar date in
// [from, to] inclusive and concatenates the per-employment results.
// TotalEmployees counts distinct employments across the whole range.
func (s *Service) ConsolidateDateRange(ctx context.Context, from, to time.Time, branchID *string) (timesheet.ConsolidationSummary, error) {
	var summary timesheet.ConsolidationSummary

	from, to = dateOnly(from), dateOnly(to)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		daySummary, err := s.ConsolidateDay(ctx, d, branchID)
		if err != nil {
			return summary, fmt.Errorf("failed to consolidate %s: %w", d.Format("2006-01-02"), err)
		}
		summary.Results = append(summary.Results, daySummary.Results...)
	}

	summary.Tally()
	return summary, nil
}

// PendingConsolidation reports how many employments with events on a day
// still lack a timesheet row. A nil date means today (UTC).
func (s *Service) PendingConsolidation(ctx context.Context, date *time.Time) (PendingReport, error) {
	day := time.Now().UTC()
	if date != nil {
		day = *date
	}
	day = dateOnly(day)

	report := PendingReport{Date: day}

	events, err := s.eventRepo.ListByDate(ctx, s.organizationID, day, nil)
	if err != nil {
		return report, fmt.Errorf("failed to fetch events: %w", err)
	}
	withEvents := event.GroupByEmployment(events)
	report.EmployeesWithEvents = len(withEvents)

	withTimesheets, err := s.timesheetRepo.ListEmploymentsWithTimesheet(ctx, s.organizationID, day)
	if err != nil {
		return report, fmt.Errorf("failed to fetch timesheets: %w", err)
	}
	report.EmployeesWithTimesheets = len(withTimesheets)

	consolidated := make(map[string]struct{}, len(withTimesheets))
	for _, id := range withTimesheets {
		consolidated[id] = struct{}{}
	}
	for id := range withEvents {
		if _, ok := consolidated[id]; !ok {
			report.Pending++
		}
	}
	return report, nil
}

// annotateNames resolves display names for every grouped employment. The
// resolver is best effort: a failure falls back to the names carried on the
// events themselves.
func (s *Service) annotateNames(ctx context.Context, grouped map[string][]event.AttendanceEvent) {
	if len(grouped) == 0 {
		return
	}
	names, err := s.eventRepo.ResolveEmployeeNames(ctx, s.organizationID, event.EmploymentIDs(grouped))
	if err != nil {
		slog.Warn("failed to resolve employee names", "error", err)
		names = nil
	}
	event.AnnotateNames(grouped, names)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
