package timesheet

import "time"

// Status is the lifecycle of a timesheet row. Approved and locked rows are
// closed records: the engine never mutates them.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAbsent   Status = "absent"
	StatusApproved Status = "approved"
	StatusLocked   Status = "locked"
)

// Closed reports whether a status marks the row read-only for the engine.
func (s Status) Closed() bool {
	return s == StatusApproved || s == StatusLocked
}

// Timesheet is the per-employment, per-day payroll aggregate. One row per
// (organization, employment, work date). All durations are minutes.
type Timesheet struct {
	ID             string
	OrganizationID string
	EmploymentID   string
	WorkDate       time.Time

	ScheduledMinutes      int
	WorkedMinutes         int
	BreakMinutes          int
	NetWorkedMinutes      int
	OvertimeMinutes       int
	NightMinutes          int
	HolidayMinutes        int // always 0, holiday detection is not implemented
	LateMinutes           int
	EarlyDepartureMinutes int

	FirstCheckIn *time.Time
	LastCheckOut *time.Time

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
