package event

import "sort"

// UnknownEmployeeName is substituted when the name resolver has no entry
// for an employment.
const UnknownEmployeeName = "no name"

// GroupByEmployment partitions a flat day of events into per-employment
// buckets ordered by occurrence time. An empty input yields an empty map.
func GroupByEmployment(events []AttendanceEvent) map[string][]AttendanceEvent {
	grouped := make(map[string][]AttendanceEvent, len(events))
	for _, ev := range events {
		grouped[ev.EmploymentID] = append(grouped[ev.EmploymentID], ev)
	}
	for _, bucket := range grouped {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].OccurredAt.Before(bucket[j].OccurredAt)
		})
	}
	return grouped
}

// AnnotateNames fills in EmployeeName on every event from the resolved name
// map, falling back to UnknownEmployeeName. Events that already carry a
// name from the employment join keep it unless the resolver knows better.
func AnnotateNames(grouped map[string][]AttendanceEvent, names map[string]string) {
	for employmentID, bucket := range grouped {
		name, ok := names[employmentID]
		for i := range bucket {
			if ok {
				bucket[i].EmployeeName = name
			} else if bucket[i].EmployeeName == "" {
				bucket[i].EmployeeName = UnknownEmployeeName
			}
		}
	}
}

// EmploymentIDs returns the distinct employment IDs present in a group,
// sorted for deterministic iteration order.
func EmploymentIDs(grouped map[string][]AttendanceEvent) []string {
	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FirstOfType returns the chronologically first event of the given type in
// an ordered bucket, or nil.
func FirstOfType(bucket []AttendanceEvent, t Type) *AttendanceEvent {
	for i := range bucket {
		if bucket[i].Type == t {
			return &bucket[i]
		}
	}
	return nil
}

// LastOfType returns the chronologically last event of the given type in an
// ordered bucket, or nil.
func LastOfType(bucket []AttendanceEvent, t Type) *AttendanceEvent {
	for i := len(bucket) - 1; i >= 0; i-- {
		if bucket[i].Type == t {
			return &bucket[i]
		}
	}
	return nil
}
