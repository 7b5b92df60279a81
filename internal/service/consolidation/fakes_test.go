package consolidation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/shift"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/timesheet"
)

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

type fakeEventRepo struct {
	events  map[string][]event.AttendanceEvent // keyed by work date
	names   map[string]string
	listErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[string][]event.AttendanceEvent),
		names:  make(map[string]string),
	}
}

func (f *fakeEventRepo) add(date time.Time, evs ...event.AttendanceEvent) {
	key := dayKey(date)
	f.events[key] = append(f.events[key], evs...)
}

func (f *fakeEventRepo) ListByDate(_ context.Context, _ string, date time.Time, branchID *string) ([]event.AttendanceEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []event.AttendanceEvent
	for _, ev := range f.events[dayKey(date)] {
		if branchID != nil && (ev.BranchID == nil || *ev.BranchID != *branchID) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (f *fakeEventRepo) ResolveEmployeeNames(_ context.Context, _ string, ids []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeShiftRepo struct {
	assignments map[string][]shift.Assignment // keyed by work date
	statuses    map[string]shift.AssignmentStatus
	updateErr   error
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		assignments: make(map[string][]shift.Assignment),
		statuses:    make(map[string]shift.AssignmentStatus),
	}
}

func (f *fakeShiftRepo) add(a shift.Assignment) {
	key := dayKey(a.WorkDate)
	f.assignments[key] = append(f.assignments[key], a)
}

func (f *fakeShiftRepo) ListAssignmentsByDate(_ context.Context, _ string, date time.Time, _ *string) ([]shift.Assignment, error) {
	return f.assignments[dayKey(date)], nil
}

func (f *fakeShiftRepo) UpdateAssignmentStatus(_ context.Context, _ string, employmentID string, date time.Time, status shift.AssignmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statuses[employmentID+"|"+dayKey(date)] = status
	return nil
}

type fakeTimesheetRepo struct {
	mu        sync.Mutex
	rows      map[string]timesheet.Timesheet // keyed by employment|date
	nextID    int
	upsertErr map[string]error // per employment
	closeOn   map[string]bool  // simulate a concurrent approval on Upsert
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{
		rows:      make(map[string]timesheet.Timesheet),
		upsertErr: make(map[string]error),
		closeOn:   make(map[string]bool),
	}
}

func tsKey(employmentID string, date time.Time) string {
	return employmentID + "|" + dayKey(date)
}

func (f *fakeTimesheetRepo) seed(ts timesheet.Timesheet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ts.ID = fmt.Sprintf("ts-%d", f.nextID)
	f.rows[tsKey(ts.EmploymentID, ts.WorkDate)] = ts
}

func (f *fakeTimesheetRepo) GetByEmploymentAndDate(_ context.Context, _ string, employmentID string, date time.Time) (*timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ts, ok := f.rows[tsKey(employmentID, date)]; ok {
		copied := ts
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeTimesheetRepo) Upsert(_ context.Context, ts timesheet.Timesheet) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.upsertErr[ts.EmploymentID]; err != nil {
		return "", err
	}
	if f.closeOn[ts.EmploymentID] {
		return "", timesheet.ErrTimesheetClosed
	}

	key := tsKey(ts.EmploymentID, ts.WorkDate)
	if existing, ok := f.rows[key]; ok {
		if existing.Status.Closed() {
			return "", timesheet.ErrTimesheetClosed
		}
		ts.ID = existing.ID
	} else {
		f.nextID++
		ts.ID = fmt.Sprintf("ts-%d", f.nextID)
	}
	f.rows[key] = ts
	return ts.ID, nil
}

func (f *fakeTimesheetRepo) ListEmploymentsWithTimesheet(_ context.Context, _ string, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, ts := range f.rows {
		if dayKey(ts.WorkDate) == dayKey(date) {
			ids = append(ids, ts.EmploymentID)
		}
	}
	return ids, nil
}

func (f *fakeTimesheetRepo) ListByDate(_ context.Context, _ string, date time.Time) ([]timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timesheet.Timesheet
	for _, ts := range f.rows {
		if dayKey(ts.WorkDate) == dayKey(date) {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (f *fakeTimesheetRepo) get(employmentID string, date time.Time) (timesheet.Timesheet, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ts, ok := f.rows[tsKey(employmentID, date)]
	return ts, ok
}
