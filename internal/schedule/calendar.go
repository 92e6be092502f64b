package schedule

import "flotavista-backend/internal/models"

// BuildMonths groups a sequential date range into month-aligned blocks for
// 7-column grid rendering. A new block starts whenever the calendar month
// changes, so partial leading and trailing months come out as their own
// blocks. LeadingBlanks is the Monday-first weekday index of the block's
// first day.
//
// Conservation holds by construction: every input day lands in exactly one
// block, in the original order.
func BuildMonths(days []string) []models.CalendarMonth {
	var months []models.CalendarMonth
	for _, day := range days {
		if len(months) == 0 || !sameMonth(months[len(months)-1].Anchor, day) {
			blanks := ISOWeekday(day) - 1
			if blanks < 0 {
				blanks = 0
			}
			months = append(months, models.CalendarMonth{
				Anchor:        day,
				LeadingBlanks: blanks,
			})
		}
		last := &months[len(months)-1]
		last.Days = append(last.Days, day)
	}
	return months
}

// sameMonth compares the "yyyy-MM" prefix of two canonical dates
func sameMonth(a, b string) bool {
	if len(a) < 7 || len(b) < 7 {
		return a == b
	}
	return a[:7] == b[:7]
}
