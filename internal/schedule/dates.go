package schedule

import "time"

// DateLayout is the canonical calendar-date format used everywhere in the
// scheduling core. Lexical order on strings in this format equals calendar
// order, which is what interval containment relies on — never swap these
// comparisons for timezone-aware timestamp math.
const DateLayout = "2006-01-02"

// IsCanonicalDate reports whether s is a valid date in canonical
// "yyyy-MM-dd" form. Anything else fails closed: it simply never matches
// an interval.
func IsCanonicalDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ISOWeekday returns the ISO weekday of a canonical date (Monday=1 ..
// Sunday=7), or 0 if the date is malformed.
func ISOWeekday(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// rangeContains reports whether date falls inside the inclusive [start, end]
// range. Malformed endpoints exclude the record rather than erroring, so one
// bad row cannot break resolution for the rest of the fleet.
func rangeContains(start, end, date string) bool {
	if !IsCanonicalDate(start) || !IsCanonicalDate(end) {
		return false
	}
	return start <= date && date <= end
}

// DateRange returns n sequential canonical dates starting at from.
// Returns nil when from is malformed or n <= 0.
func DateRange(from string, n int) []string {
	t, err := time.Parse(DateLayout, from)
	if err != nil || n <= 0 {
		return nil
	}
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, t.AddDate(0, 0, i).Format(DateLayout))
	}
	return days
}
