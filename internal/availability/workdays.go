package availability

import (
	"strconv"
	"strings"
	"time"
)

// WorkingDays is the set of weekdays a schedule is active on, indexed by
// time.Weekday (0 = Sunday … 6 = Saturday).
type WorkingDays [7]bool

// AllWeek returns a set containing every weekday.
func AllWeek() WorkingDays {
	return WorkingDays{true, true, true, true, true, true, true}
}

// ParseWorkingDays parses a comma-separated list of weekday numbers ("0,1,5").
// Absent or fully malformed input yields the full week. Individual malformed
// entries are skipped. It never fails.
func ParseWorkingDays(raw string) WorkingDays {
	var days WorkingDays
	any := false
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days[n] = true
		any = true
	}
	if !any {
		return AllWeek()
	}
	return days
}

// Contains reports whether the given weekday is in the set.
func (w WorkingDays) Contains(day time.Weekday) bool {
	return w[int(day)]
}

// Next returns the first working day at or after the given offset in days
// from the provided weekday, scanning forward at most a full week. The
// returned offset is in [from+... ] days; ok is false only for an empty set.
func (w WorkingDays) Next(after time.Weekday, minOffset int) (day time.Weekday, offset int, ok bool) {
	for i := minOffset; i < minOffset+7; i++ {
		candidate := time.Weekday((int(after) + i) % 7)
		if w.Contains(candidate) {
			return candidate, i, true
		}
	}
	return 0, 0, false
}

// String renders the set back to its comma-separated wire form.
func (w WorkingDays) String() string {
	parts := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		if w[i] {
			parts = append(parts, strconv.Itoa(i))
		}
	}
	return strings.Join(parts, ",")
}
