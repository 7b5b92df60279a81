package event

import (
	"context"
	"time"
)

// Repository defines read access to the external time-clock store.
// All methods include organizationID to prevent cross-organization reads.
type Repository interface {
	// ListByDate retrieves all events within [00:00:00, 23:59:59] of the
	// given work date, joined with employment metadata, ordered by
	// occurrence time. branchID narrows to one branch when non-nil.
	ListByDate(ctx context.Context, organizationID string, date time.Time, branchID *string) ([]AttendanceEvent, error)

	// ResolveEmployeeNames maps employment IDs to display names.
	// Best effort: IDs without a profile are simply absent from the map.
	ResolveEmployeeNames(ctx context.Context, organizationID string, employmentIDs []string) (map[string]string, error)
}
