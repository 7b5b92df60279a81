package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrTimesheetClosed   = errors.New("timesheet is approved or locked")
)
