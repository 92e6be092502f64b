package schedule

import (
	"log"
	"time"

	"flotavista-backend/internal/models"
)

// ClockLayout is the "HH:MM" format shift windows are stored in
const ClockLayout = "15:04"

// IsActiveNow reports whether a resolved vehicle entry is active at the
// given instant, for the "solo activos" dashboard toggle.
//
// Status overrides are not clock-bounded, so they are always active. Shift
// entries are active iff now falls within [start, end) anchored on
// anchorDate; an end before the start means the window crosses midnight and
// ends on the following day. Entries with no parseable window are excluded
// (fail-closed) with a logged warning rather than an error.
func IsActiveNow(entry models.EnrichedVehicleEntry, anchorDate string, now time.Time) bool {
	if entry.Source == models.SourceStatus {
		return true
	}
	if entry.StartTime == nil || entry.EndTime == nil {
		return false
	}

	day, err := time.ParseInLocation(DateLayout, anchorDate, now.Location())
	if err != nil {
		log.Printf("⚠️  cannot anchor shift window for vehicle %d: bad date %q", entry.VehicleNumber, anchorDate)
		return false
	}
	startClock, err := time.Parse(ClockLayout, *entry.StartTime)
	if err != nil {
		log.Printf("⚠️  vehicle %d has unparseable shift start %q, excluding", entry.VehicleNumber, *entry.StartTime)
		return false
	}
	endClock, err := time.Parse(ClockLayout, *entry.EndTime)
	if err != nil {
		log.Printf("⚠️  vehicle %d has unparseable shift end %q, excluding", entry.VehicleNumber, *entry.EndTime)
		return false
	}

	start := day.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	end := day.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)
	if end.Before(start) {
		// Overnight shift: the window ends on the following day
		end = end.AddDate(0, 0, 1)
	}
	return !now.Before(start) && now.Before(end)
}
