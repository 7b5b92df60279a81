package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	id, organization_id, employment_id, work_date,
	scheduled_minutes, worked_minutes, break_minutes, net_worked_minutes,
	overtime_minutes, night_minutes, holiday_minutes,
	late_minutes, early_departure_minutes,
	first_check_in, last_check_out, status, created_at, updated_at
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.OrganizationID, &ts.EmploymentID, &ts.WorkDate,
		&ts.ScheduledMinutes, &ts.WorkedMinutes, &ts.BreakMinutes, &ts.NetWorkedMinutes,
		&ts.OvertimeMinutes, &ts.NightMinutes, &ts.HolidayMinutes,
		&ts.LateMinutes, &ts.EarlyDepartureMinutes,
		&ts.FirstCheckIn, &ts.LastCheckOut, &ts.Status, &ts.CreatedAt, &ts.UpdatedAt,
	)
	return ts, err
}

// GetByEmploymentAndDate implements timesheet.Repository.
func (r *timesheetRepository) GetByEmploymentAndDate(ctx context.Context, organizationID string, employmentID string, date time.Time) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE organization_id = $1
		  AND employment_id = $2
		  AND work_date = $3::date
		LIMIT 1
	`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, organizationID, employmentID, date.Format("2006-01-02")))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No timesheet for this key yet
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return &ts, nil
}

// Upsert implements timesheet.Repository. The statement is conditional: the
// update arm refuses rows whose status is approved or locked, so a
// concurrent approval between the caller's read and this write cannot be
// overwritten. No row comes back in that case and ErrTimesheetClosed is
// returned.
func (r *timesheetRepository) Upsert(ctx context.Context, ts timesheet.Timesheet) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			organization_id, employment_id, work_date,
			scheduled_minutes, worked_minutes, break_minutes, net_worked_minutes,
			overtime_minutes, night_minutes, holiday_minutes,
			late_minutes, early_departure_minutes,
			first_check_in, last_check_out, status
		) VALUES (
			$1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (organization_id, employment_id, work_date) DO UPDATE SET
			scheduled_minutes = EXCLUDED.scheduled_minutes,
			worked_minutes = EXCLUDED.worked_minutes,
			break_minutes = EXCLUDED.break_minutes,
			net_worked_minutes = EXCLUDED.net_worked_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			night_minutes = EXCLUDED.night_minutes,
			holiday_minutes = EXCLUDED.holiday_minutes,
			late_minutes = EXCLUDED.late_minutes,
			early_departure_minutes = EXCLUDED.early_departure_minutes,
			first_check_in = EXCLUDED.first_check_in,
			last_check_out = EXCLUDED.last_check_out,
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE timesheets.status NOT IN ('approved', 'locked')
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		ts.OrganizationID,
		ts.EmploymentID,
		ts.WorkDate.Format("2006-01-02"),
		ts.ScheduledMinutes,
		ts.WorkedMinutes,
		ts.BreakMinutes,
		ts.NetWorkedMinutes,
		ts.OvertimeMinutes,
		ts.NightMinutes,
		ts.HolidayMinutes,
		ts.LateMinutes,
		ts.EarlyDepartureMinutes,
		ts.FirstCheckIn,
		ts.LastCheckOut,
		ts.Status,
	).Scan(&id)

	if err != nil {
		if err == pgx.ErrNoRows {
			return "", timesheet.ErrTimesheetClosed
		}
		return "", fmt.Errorf("failed to upsert timesheet: %w", err)
	}

	return id, nil
}

// ListEmploymentsWithTimesheet implements timesheet.Repository.
func (r *timesheetRepository) ListEmploymentsWithTimesheet(ctx context.Context, organizationID string, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employment_id
		FROM timesheets
		WHERE organization_id = $1
		  AND work_date = $2::date
	`

	rows, err := q.Query(ctx, query, organizationID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list consolidated employments: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employment id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read consolidated employments: %w", err)
	}

	return ids, nil
}

// ListByDate implements timesheet.Repository.
func (r *timesheetRepository) ListByDate(ctx context.Context, organizationID string, date time.Time) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE organization_id = $1
		  AND work_date = $2::date
		ORDER BY employment_id ASC
	`

	rows, err := q.Query(ctx, query, organizationID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timesheets: %w", err)
	}

	return sheets, nil
}
