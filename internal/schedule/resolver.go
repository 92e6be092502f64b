package schedule

import (
	"log"

	"flotavista-backend/internal/models"
)

// Resolve decides what one vehicle is doing on one date by reconciling its
// status overrides and prioritized shift assignments.
//
// An active override covering the date always wins and maps to
// source:"status". Otherwise the covering assignment with the highest
// priority wins; equal priorities keep the first one in input order (callers
// pass rows ordered by creation, so ties resolve to the earliest-created
// record — stable and deterministic). If the winner's free_day equals the
// date's ISO weekday the result is flagged source:"free_day" but keeps the
// shift's label and window: a rostered day off is still an assignment.
//
// Returns nil when nothing covers the date, including when date itself is
// not a canonical "yyyy-MM-dd" string.
func Resolve(assignments []models.VehicleShiftAssignment, overrides []models.VehicleStatusOverride, date string) *models.ResolvedDayAssignment {
	if !IsCanonicalDate(date) {
		return nil
	}

	var winner *models.VehicleStatusOverride
	covering := 0
	for i := range overrides {
		ov := &overrides[i]
		if !ov.IsActive || !rangeContains(ov.StartDate, ov.EndDate, date) {
			continue
		}
		covering++
		if winner == nil {
			winner = ov
		}
	}
	if winner != nil {
		if covering > 1 {
			// Upstream data entry allows overlapping overrides; keeping the
			// first is policy, but flag it as a data-quality issue.
			log.Printf("⚠️  vehicle %d has %d overlapping status overrides on %s, keeping %q",
				winner.VehicleNumber, covering, date, winner.Status)
		}
		return &models.ResolvedDayAssignment{
			VehicleNumber: winner.VehicleNumber,
			Source:        models.SourceStatus,
			Label:         winner.Status,
			Color:         winner.Color,
		}
	}

	var best *models.VehicleShiftAssignment
	for i := range assignments {
		a := &assignments[i]
		if !rangeContains(a.StartDate, a.EndDate, date) {
			continue
		}
		// Strict > keeps the first occurrence on equal priority
		if best == nil || a.Priority > best.Priority {
			best = a
		}
	}
	if best == nil {
		return nil
	}

	source := models.SourceShift
	if best.FreeDay != nil && *best.FreeDay == ISOWeekday(date) {
		source = models.SourceFreeDay
	}
	start, end := best.StartTime, best.EndTime
	return &models.ResolvedDayAssignment{
		VehicleNumber: best.VehicleNumber,
		Source:        source,
		Label:         best.ShiftName,
		StartTime:     &start,
		EndTime:       &end,
	}
}
