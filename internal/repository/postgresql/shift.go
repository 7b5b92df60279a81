package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/shift"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepository{db: db}
}

// ListAssignmentsByDate implements shift.Repository. Only assignments in a
// reconcilable status are returned; draft, cancelled and the like stay out
// of consolidation.
func (r *shiftRepository) ListAssignmentsByDate(ctx context.Context, organizationID string, date time.Time, branchID *string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sa.id, sa.employment_id, sa.work_date, sa.status,
			   st.id, st.name, st.start_time, st.end_time, st.break_minutes, st.is_night_shift,
			   COALESCE(p.full_name, '') AS employee_name
		FROM shift_assignments sa
		JOIN shift_templates st ON st.id = sa.shift_template_id
		JOIN employments e ON e.id = sa.employment_id
		LEFT JOIN profiles p ON p.id = e.profile_id
		WHERE sa.organization_id = $1
		  AND sa.work_date = $2::date
		  AND sa.status IN ('scheduled', 'completed', 'late', 'absent')
	`
	args := []interface{}{organizationID, date.Format("2006-01-02")}

	if branchID != nil {
		query += ` AND e.branch_id = $3`
		args = append(args, *branchID)
	}
	query += ` ORDER BY sa.employment_id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var a shift.Assignment
		if err := rows.Scan(
			&a.ID, &a.EmploymentID, &a.WorkDate, &a.Status,
			&a.Template.ID, &a.Template.Name, &a.Template.StartTime, &a.Template.EndTime,
			&a.Template.BreakMinutes, &a.Template.IsNightShift,
			&a.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shift assignments: %w", err)
	}

	return assignments, nil
}

// UpdateAssignmentStatus implements shift.Repository.
func (r *shiftRepository) UpdateAssignmentStatus(ctx context.Context, organizationID string, employmentID string, date time.Time, status shift.AssignmentStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments
		SET status = $4, updated_at = NOW()
		WHERE organization_id = $1
		  AND employment_id = $2
		  AND work_date = $3::date
	`

	if _, err := q.Exec(ctx, query, organizationID, employmentID, date.Format("2006-01-02"), status); err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	return nil
}
