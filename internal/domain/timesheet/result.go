package timesheet

import "time"

// ResultStatus is the per-employee outcome of one consolidation pass.
type ResultStatus string

const (
	ResultCreated ResultStatus = "created"
	ResultUpdated ResultStatus = "updated"
	ResultSkipped ResultStatus = "skipped"
	ResultError   ResultStatus = "error"
)

// ConsolidationResult records what happened to one employment on one day.
type ConsolidationResult struct {
	EmploymentID string
	EmployeeName string
	Status       ResultStatus
	Message      string
	TimesheetID  string
}

// ConsolidationSummary aggregates the outcomes of one consolidation call.
// Results keeps the per-employee order the engine processed them in.
type ConsolidationSummary struct {
	Created        int
	Updated        int
	Skipped        int
	Errors         int
	TotalEmployees int
	Results        []ConsolidationResult
}

// Tally recomputes the aggregate counts from Results. TotalEmployees is the
// distinct employment count, not len(Results), so multi-day concatenations
// stay correct.
func (s *ConsolidationSummary) Tally() {
	s.Created, s.Updated, s.Skipped, s.Errors = 0, 0, 0, 0
	seen := make(map[string]struct{}, len(s.Results))
	for _, r := range s.Results {
		switch r.Status {
		case ResultCreated:
			s.Created++
		case ResultUpdated:
			s.Updated++
		case ResultSkipped:
			s.Skipped++
		case ResultError:
			s.Errors++
		}
		seen[r.EmploymentID] = struct{}{}
	}
	s.TotalEmployees = len(seen)
}

// AttendanceStatus classifies how the actual events compare to a scheduled
// shift.
type AttendanceStatus string

const (
	AttendanceOnTime     AttendanceStatus = "on_time"
	AttendanceLate       AttendanceStatus = "late"
	AttendanceAbsent     AttendanceStatus = "absent"
	AttendanceIncomplete AttendanceStatus = "incomplete"
	AttendanceNoShift    AttendanceStatus = "no_shift"
	AttendanceRestDay    AttendanceStatus = "rest_day"
)

// ShiftComparisonResult is the schedule-aware intermediate fact: one per
// assignment per day, scheduled boundaries against actual ones with the
// derived minute breakdown.
type ShiftComparisonResult struct {
	EmploymentID string
	EmployeeName string
	WorkDate     time.Time

	ScheduledStart time.Time
	ScheduledEnd   time.Time

	ActualCheckIn  *time.Time
	ActualCheckOut *time.Time

	ScheduledMinutes      int
	WorkedMinutes         int
	BreakMinutes          int
	OvertimeMinutes       int
	NightMinutes          int
	LateMinutes           int
	EarlyDepartureMinutes int

	AttendanceStatus AttendanceStatus
}
