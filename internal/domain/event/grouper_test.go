package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 15, hour, min, 0, 0, time.UTC)
}

func TestGroupByEmployment(t *testing.T) {
	events := []AttendanceEvent{
		{EmploymentID: "E2", Type: TypeCheckIn, OccurredAt: at(9, 0)},
		{EmploymentID: "E1", Type: TypeCheckOut, OccurredAt: at(17, 0)},
		{EmploymentID: "E1", Type: TypeCheckIn, OccurredAt: at(8, 0)},
		{EmploymentID: "E1", Type: TypeBreakStart, OccurredAt: at(12, 0)},
	}

	grouped := GroupByEmployment(events)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["E1"], 3)
	require.Len(t, grouped["E2"], 1)

	// Buckets come back ordered by occurrence time.
	assert.Equal(t, TypeCheckIn, grouped["E1"][0].Type)
	assert.Equal(t, TypeBreakStart, grouped["E1"][1].Type)
	assert.Equal(t, TypeCheckOut, grouped["E1"][2].Type)
}

func TestGroupByEmploymentEmpty(t *testing.T) {
	assert.Empty(t, GroupByEmployment(nil))
	assert.Empty(t, GroupByEmployment([]AttendanceEvent{}))
}

func TestAnnotateNames(t *testing.T) {
	grouped := GroupByEmployment([]AttendanceEvent{
		{EmploymentID: "E1", Type: TypeCheckIn, OccurredAt: at(8, 0)},
		{EmploymentID: "E2", Type: TypeCheckIn, OccurredAt: at(8, 5), EmployeeName: "From Join"},
		{EmploymentID: "E3", Type: TypeCheckIn, OccurredAt: at(8, 10)},
	})

	AnnotateNames(grouped, map[string]string{"E1": "Jane Smith"})

	assert.Equal(t, "Jane Smith", grouped["E1"][0].EmployeeName)
	// Unresolved entries keep the join name when present...
	assert.Equal(t, "From Join", grouped["E2"][0].EmployeeName)
	// ...and fall back to the placeholder otherwise.
	assert.Equal(t, UnknownEmployeeName, grouped["E3"][0].EmployeeName)
}

func TestEmploymentIDsSorted(t *testing.T) {
	grouped := GroupByEmployment([]AttendanceEvent{
		{EmploymentID: "E3", OccurredAt: at(8, 0)},
		{EmploymentID: "E1", OccurredAt: at(8, 1)},
		{EmploymentID: "E2", OccurredAt: at(8, 2)},
	})

	assert.Equal(t, []string{"E1", "E2", "E3"}, EmploymentIDs(grouped))
}

func TestFirstAndLastOfType(t *testing.T) {
	bucket := []AttendanceEvent{
		{Type: TypeCheckIn, OccurredAt: at(8, 0)},
		{Type: TypeCheckIn, OccurredAt: at(8, 30)},
		{Type: TypeCheckOut, OccurredAt: at(12, 0)},
		{Type: TypeCheckOut, OccurredAt: at(17, 0)},
	}

	first := FirstOfType(bucket, TypeCheckIn)
	require.NotNil(t, first)
	assert.Equal(t, at(8, 0), first.OccurredAt)

	last := LastOfType(bucket, TypeCheckOut)
	require.NotNil(t, last)
	assert.Equal(t, at(17, 0), last.OccurredAt)

	assert.Nil(t, FirstOfType(bucket, TypeBreakStart))
	assert.Nil(t, LastOfType(nil, TypeCheckOut))
}
