package export

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/timesheet"
	"github.com/xuri/excelize/v2"
)

// Service writes consolidated timesheets out as spreadsheets for payroll
// handoff.
type Service struct {
	organizationID string
	timesheetRepo  timesheet.Repository
}

func NewExportService(organizationID string, timesheetRepo timesheet.Repository) *Service {
	return &Service{organizationID: organizationID, timesheetRepo: timesheetRepo}
}

var dayExportHeader = []string{
	"Employment ID", "Work Date", "Status",
	"Scheduled", "Worked", "Break", "Net Worked",
	"Overtime", "Night", "Holiday", "Late", "Early Departure",
	"First Check-In", "Last Check-Out",
}

// ExportDay writes one work date's timesheets to an XLSX file, one row per
// employment, all durations in minutes.
func (s *Service) ExportDay(ctx context.Context, date time.Time, path string) (int, error) {
	sheets, err := s.timesheetRepo.ListByDate(ctx, s.organizationID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list timesheets: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := date.Format("2006-01-02")
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range dayExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return 0, err
		}
	}

	for i, ts := range sheets {
		row := i + 2
		values := []interface{}{
			ts.EmploymentID,
			ts.WorkDate.Format("2006-01-02"),
			string(ts.Status),
			ts.ScheduledMinutes,
			ts.WorkedMinutes,
			ts.BreakMinutes,
			ts.NetWorkedMinutes,
			ts.OvertimeMinutes,
			ts.NightMinutes,
			ts.HolidayMinutes,
			ts.LateMinutes,
			ts.EarlyDepartureMinutes,
			formatTimePtr(ts.FirstCheckIn),
			formatTimePtr(ts.LastCheckOut),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return 0, err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("failed to save export: %w", err)
	}
	return len(sheets), nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
