package event

import "time"

// Type identifies what an attendance event records.
type Type string

const (
	TypeCheckIn    Type = "check_in"
	TypeCheckOut   Type = "check_out"
	TypeBreakStart Type = "break_start"
	TypeBreakEnd   Type = "break_end"
)

var TypeValues = []string{
	string(TypeCheckIn),
	string(TypeCheckOut),
	string(TypeBreakStart),
	string(TypeBreakEnd),
}

// AttendanceEvent is an immutable clock fact produced by the time-clock
// subsystem. The engine never writes events.
type AttendanceEvent struct {
	ID            string
	EmploymentID  string
	Type          Type
	OccurredAt    time.Time
	IsManualEntry bool
	GeoValidated  *bool

	// Denormalized from the employment join for display and the
	// unscheduled scheduled-minutes derivation.
	EmployeeName     string
	EmployeeCode     string
	BranchID         *string
	WorkHoursPerWeek *float64
}
