package schedule

import (
	"sort"

	"flotavista-backend/internal/models"
)

// NoShiftBucket is the sentinel label vehicles with no resolved assignment
// are grouped under. They are listed, never omitted: the dashboard must
// account for every vehicle in the roster.
const NoShiftBucket = "Sin Turno Asignado"

// VehicleSchedule is one roster vehicle together with its already-fetched
// assignments and overrides, the unit the aggregator works on
type VehicleSchedule struct {
	VehicleNumber int
	BranchID      string
	Assignments   []models.VehicleShiftAssignment
	Overrides     []models.VehicleStatusOverride
}

// AggregateFleetDay resolves every roster vehicle for one date and groups
// the outcomes into label-keyed buckets. When branchID is non-empty only
// vehicles of that branch are considered. Each considered vehicle appears in
// exactly one bucket; within a bucket vehicles are ascending by number.
func AggregateFleetDay(roster []VehicleSchedule, date string, branchID string) map[string][]models.EnrichedVehicleEntry {
	buckets := make(map[string][]models.EnrichedVehicleEntry)
	for _, vs := range roster {
		if branchID != "" && vs.BranchID != branchID {
			continue
		}
		entry := models.EnrichedVehicleEntry{
			VehicleNumber: vs.VehicleNumber,
			Source:        models.SourceNone,
			Label:         NoShiftBucket,
		}
		if resolved := Resolve(vs.Assignments, vs.Overrides, date); resolved != nil {
			entry.Source = resolved.Source
			entry.Label = resolved.Label
			entry.StartTime = resolved.StartTime
			entry.EndTime = resolved.EndTime
			entry.Color = resolved.Color
		}
		buckets[entry.Label] = append(buckets[entry.Label], entry)
	}
	for label := range buckets {
		entries := buckets[label]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].VehicleNumber < entries[j].VehicleNumber
		})
	}
	return buckets
}
