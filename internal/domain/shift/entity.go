package shift

import "time"

// Template defines the expected boundaries of a shift. Start and end are
// local clock times carried on a throwaway date; only hour and minute are
// meaningful.
type Template struct {
	ID           string
	Name         string
	StartTime    time.Time
	EndTime      time.Time
	BreakMinutes int
	IsNightShift bool
}

// AssignmentStatus is the lifecycle of a scheduled shift. Statuses outside
// the four known values are passed through untouched.
type AssignmentStatus string

const (
	AssignmentScheduled AssignmentStatus = "scheduled"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentLate      AssignmentStatus = "late"
	AssignmentAbsent    AssignmentStatus = "absent"
)

var AssignmentStatusValues = []string{
	string(AssignmentScheduled),
	string(AssignmentCompleted),
	string(AssignmentLate),
	string(AssignmentAbsent),
}

// Assignment links an employment to a shift template for one work date.
type Assignment struct {
	ID           string
	EmploymentID string
	WorkDate     time.Time
	Status       AssignmentStatus
	Template     Template

	EmployeeName string
}
