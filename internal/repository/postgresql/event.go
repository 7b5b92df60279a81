package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.Repository {
	return &eventRepository{db: db}
}

// ListByDate implements event.Repository.
func (r *eventRepository) ListByDate(ctx context.Context, organizationID string, date time.Time, branchID *string) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ev.id, ev.employment_id, ev.event_type, ev.event_at,
			   ev.is_manual_entry, ev.geo_validated,
			   COALESCE(p.full_name, '') AS employee_name,
			   COALESCE(e.employee_code, '') AS employee_code,
			   e.branch_id, e.work_hours_per_week
		FROM attendance_events ev
		JOIN employments e ON e.id = ev.employment_id
		LEFT JOIN profiles p ON p.id = e.profile_id
		WHERE ev.organization_id = $1
		  AND ev.event_at >= $2::date
		  AND ev.event_at < $2::date + INTERVAL '1 day'
	`
	args := []interface{}{organizationID, date.Format("2006-01-02")}

	if branchID != nil {
		query += ` AND e.branch_id = $3`
		args = append(args, *branchID)
	}
	query += ` ORDER BY ev.event_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []event.AttendanceEvent
	for rows.Next() {
		var ev event.AttendanceEvent
		if err := rows.Scan(
			&ev.ID, &ev.EmploymentID, &ev.Type, &ev.OccurredAt,
			&ev.IsManualEntry, &ev.GeoValidated,
			&ev.EmployeeName, &ev.EmployeeCode,
			&ev.BranchID, &ev.WorkHoursPerWeek,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}

	return events, nil
}

// ResolveEmployeeNames implements event.Repository.
func (r *eventRepository) ResolveEmployeeNames(ctx context.Context, organizationID string, employmentIDs []string) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, p.full_name
		FROM employments e
		JOIN profiles p ON p.id = e.profile_id
		WHERE e.organization_id = $1
		  AND e.id = ANY($2)
	`

	rows, err := q.Query(ctx, query, organizationID, employmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(employmentIDs))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan employee name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee names: %w", err)
	}

	return names, nil
}
