// Package timecalc holds the pure minute arithmetic behind timesheet
// consolidation. Every function takes an explicit Config value so there is
// no hidden per-instance state.
package timecalc

import (
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-engine-go/internal/domain/shift"
)

// Config carries the engine's time parameters.
type Config struct {
	StandardDailyMinutes int
	NightStartHour       int
	NightEndHour         int
	LateThresholdMinutes int
	WorkDaysPerWeek      int
}

// DefaultConfig returns the standard parameters: 8h standard day, night
// window 21:00-06:00, 15 minute late tolerance, 6 working days per week.
func DefaultConfig() Config {
	return Config{
		StandardDailyMinutes: 480,
		NightStartHour:       21,
		NightEndHour:         6,
		LateThresholdMinutes: 15,
		WorkDaysPerWeek:      6,
	}
}

// maxNightWalk caps the NightMinutes interval; anything past a full day is
// clamped since the walk is O(minutes).
const maxNightWalk = 24 * time.Hour

// PairBreaks sums the paired break durations in an ordered event bucket.
// break_start and break_end events are sorted independently by timestamp
// and zipped positionally up to min(starts, ends); unmatched tails are
// ignored. Known limitation: when a break_end precedes its break_start the
// positional zip can combine mismatched pairs, but negative pairs
// contribute zero.
func PairBreaks(events []event.AttendanceEvent) int {
	var starts, ends []time.Time
	for _, ev := range events {
		switch ev.Type {
		case event.TypeBreakStart:
			starts = append(starts, ev.OccurredAt)
		case event.TypeBreakEnd:
			ends = append(ends, ev.OccurredAt)
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	sort.Slice(ends, func(i, j int) bool { return ends[i].Before(ends[j]) })

	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}

	total := 0
	for i := 0; i < n; i++ {
		mins := int(ends[i].Sub(starts[i]).Minutes())
		if mins > 0 {
			total += mins
		}
	}
	return total
}

// NightMinutes counts the minutes of [checkIn, checkOut) whose clock hour
// falls inside the night window. The window wraps past midnight: a minute
// is night when hour >= NightStartHour or hour < NightEndHour. Inverted
// intervals count zero; intervals beyond 24h are capped.
func (c Config) NightMinutes(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	if checkOut.Sub(checkIn) > maxNightWalk {
		checkOut = checkIn.Add(maxNightWalk)
	}

	count := 0
	for cur := checkIn; cur.Before(checkOut); cur = cur.Add(time.Minute) {
		h := cur.Hour()
		if h >= c.NightStartHour || h < c.NightEndHour {
			count++
		}
	}
	return count
}

// OvertimeMinutes is the net worked time in excess of the scheduled time.
func OvertimeMinutes(netWorked, scheduled int) int {
	if netWorked > scheduled {
		return netWorked - scheduled
	}
	return 0
}

// LateMinutes compares the actual check-in against the template's start
// clock time applied to the check-in's own calendar date.
func LateMinutes(actualCheckIn, scheduledStart time.Time) int {
	start := OnDate(actualCheckIn, scheduledStart)
	diff := int(actualCheckIn.Sub(start).Minutes())
	if diff > 0 {
		return diff
	}
	return 0
}

// EarlyDepartureMinutes compares the actual check-out against the
// template's end clock time applied to the check-out's own calendar date.
func EarlyDepartureMinutes(actualCheckOut, scheduledEnd time.Time) int {
	end := OnDate(actualCheckOut, scheduledEnd)
	diff := int(end.Sub(actualCheckOut).Minutes())
	if diff > 0 {
		return diff
	}
	return 0
}

// ScheduledMinutesFromTemplate derives the expected net shift length. A
// negative raw span means the shift wraps past midnight and gains a day.
func ScheduledMinutesFromTemplate(t shift.Template) int {
	start := t.StartTime.Hour()*60 + t.StartTime.Minute()
	end := t.EndTime.Hour()*60 + t.EndTime.Minute()
	mins := end - start
	if mins < 0 {
		mins += 24 * 60
	}
	return mins - t.BreakMinutes
}

// ScheduledMinutesFromWeeklyHours derives a flat daily expectation from the
// employment's contracted weekly hours spread over the configured working
// days. A missing or non-positive value falls back to the standard day.
func (c Config) ScheduledMinutesFromWeeklyHours(weeklyHours *float64) int {
	if weeklyHours == nil || *weeklyHours <= 0 {
		return c.StandardDailyMinutes
	}
	return int(math.Round(*weeklyHours / float64(c.WorkDaysPerWeek) * 60))
}

// OnDate applies the clock time of clock to the calendar date of date, in
// date's location.
func OnDate(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		date.Location(),
	)
}
