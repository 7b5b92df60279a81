package consolidation

import (
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/shift"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/timecalc"
)

// ReconcileShifts joins one day's shift assignments against the grouped
// actual events and produces one comparison result per assignment, in
// assignment order. Missing data degrades to absent or incomplete, never to
// an error.
func ReconcileShifts(cfg timecalc.Config, assignments []shift.Assignment, grouped map[string][]event.AttendanceEvent) []timesheet.ShiftComparisonResult {
	results := make([]timesheet.ShiftComparisonResult, 0, len(assignments))
	for _, a := range assignments {
		results = append(results, reconcileAssignment(cfg, a, grouped[a.EmploymentID]))
	}
	return results
}

func reconcileAssignment(cfg timecalc.Config, a shift.Assignment, bucket []event.AttendanceEvent) timesheet.ShiftComparisonResult {
	scheduledStart := timecalc.OnDate(a.WorkDate, a.Template.StartTime)
	scheduledEnd := timecalc.OnDate(a.WorkDate, a.Template.EndTime)
	if !scheduledEnd.After(scheduledStart) {
		// Night shift: the scheduled end falls on the next day.
		scheduledEnd = scheduledEnd.Add(24 * time.Hour)
	}

	res := timesheet.ShiftComparisonResult{
		EmploymentID:     a.EmploymentID,
		EmployeeName:     a.EmployeeName,
		WorkDate:         a.WorkDate,
		ScheduledStart:   scheduledStart,
		ScheduledEnd:     scheduledEnd,
		ScheduledMinutes: timecalc.ScheduledMinutesFromTemplate(a.Template),
	}

	firstIn := event.FirstOfType(bucket, event.TypeCheckIn)
	if firstIn == nil {
		res.AttendanceStatus = timesheet.AttendanceAbsent
		return res
	}
	res.ActualCheckIn = &firstIn.OccurredAt

	lastOut := event.LastOfType(bucket, event.TypeCheckOut)
	if lastOut == nil {
		// Open interval: every checkout-dependent field stays zero.
		res.AttendanceStatus = timesheet.AttendanceIncomplete
		return res
	}
	res.ActualCheckOut = &lastOut.OccurredAt

	res.BreakMinutes = a.Template.BreakMinutes
	res.WorkedMinutes = int(lastOut.OccurredAt.Sub(firstIn.OccurredAt).Minutes()) - a.Template.BreakMinutes
	res.LateMinutes = timecalc.LateMinutes(firstIn.OccurredAt, a.Template.StartTime)
	res.EarlyDepartureMinutes = timecalc.EarlyDepartureMinutes(lastOut.OccurredAt, a.Template.EndTime)
	res.OvertimeMinutes = timecalc.OvertimeMinutes(res.WorkedMinutes, res.ScheduledMinutes)
	res.NightMinutes = cfg.NightMinutes(firstIn.OccurredAt, lastOut.OccurredAt)

	if res.LateMinutes > cfg.LateThresholdMinutes {
		res.AttendanceStatus = timesheet.AttendanceLate
	} else {
		res.AttendanceStatus = timesheet.AttendanceOnTime
	}
	return res
}

// assignmentStatusFor maps a reconciled attendance outcome back onto the
// assignment lifecycle. An incomplete shift stays scheduled because it
// never closed.
func assignmentStatusFor(s timesheet.AttendanceStatus) shift.AssignmentStatus {
	switch s {
	case timesheet.AttendanceLate:
		return shift.AssignmentLate
	case timesheet.AttendanceAbsent:
		return shift.AssignmentAbsent
	case timesheet.AttendanceOnTime:
		return shift.AssignmentCompleted
	default:
		return shift.AssignmentScheduled
	}
}
