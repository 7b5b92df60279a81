package timesheet

import (
	"context"
	"time"
)

// Repository defines read/write access to the timesheet store.
type Repository interface {
	// GetByEmploymentAndDate retrieves the row for one
	// (organization, employment, work date) key, or nil when none exists.
	GetByEmploymentAndDate(ctx context.Context, organizationID string, employmentID string, date time.Time) (*Timesheet, error)

	// Upsert inserts or updates the row keyed by
	// (organization, employment, work date) and returns its ID. The update
	// arm is conditional: a row whose status is approved or locked is left
	// untouched and ErrTimesheetClosed is returned, even when the caller's
	// earlier read saw it open.
	Upsert(ctx context.Context, ts Timesheet) (string, error)

	// ListEmploymentsWithTimesheet returns the distinct employment IDs that
	// have a row on the given date.
	ListEmploymentsWithTimesheet(ctx context.Context, organizationID string, date time.Time) ([]string, error)

	// ListByDate retrieves all rows for one work date ordered by
	// employment, for reporting and export.
	ListByDate(ctx context.Context, organizationID string, date time.Time) ([]Timesheet, error)
}
