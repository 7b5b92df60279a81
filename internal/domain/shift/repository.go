package shift

import (
	"context"
	"time"
)

// Repository defines access to shift schedule data.
type Repository interface {
	// ListAssignmentsByDate retrieves one day's assignments joined with
	// their templates. Only rows with status scheduled, completed, late or
	// absent are returned; branchID narrows to one branch when non-nil.
	ListAssignmentsByDate(ctx context.Context, organizationID string, date time.Time, branchID *string) ([]Assignment, error)

	// UpdateAssignmentStatus patches the status of the assignment keyed by
	// employment and work date.
	UpdateAssignmentStatus(ctx context.Context, organizationID string, employmentID string, date time.Time, status AssignmentStatus) error
}
