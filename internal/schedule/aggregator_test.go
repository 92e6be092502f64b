package schedule

import (
	"testing"

	"flotavista-backend/internal/models"
)

func rosterFixture() []VehicleSchedule {
	return []VehicleSchedule{
		{
			VehicleNumber: 103,
			BranchID:      "scl",
			Assignments: []models.VehicleShiftAssignment{
				assignment("a1", 103, "Turno Mañana", "2024-01-01", "2024-01-31", 1, nil),
			},
		},
		{
			VehicleNumber: 101,
			BranchID:      "scl",
			Assignments: []models.VehicleShiftAssignment{
				assignment("a2", 101, "Turno Mañana", "2024-01-01", "2024-01-31", 1, nil),
			},
		},
		{
			VehicleNumber: 102,
			BranchID:      "scl",
			Overrides: []models.VehicleStatusOverride{
				override(102, "Mantención", "2024-01-10", "2024-01-20"),
			},
		},
		{
			VehicleNumber: 200,
			BranchID:      "anf",
			// no coverage at all
		},
	}
}

func TestAggregateFleetDayUnion(t *testing.T) {
	buckets := AggregateFleetDay(rosterFixture(), "2024-01-15", "")

	seen := make(map[int]int)
	for _, entries := range buckets {
		for _, e := range entries {
			seen[e.VehicleNumber]++
		}
	}
	for _, want := range []int{101, 102, 103, 200} {
		if seen[want] != 1 {
			t.Errorf("vehicle %d appears %d times, want exactly once", want, seen[want])
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 vehicles across buckets, got %d", len(seen))
	}
}

func TestAggregateFleetDayBuckets(t *testing.T) {
	buckets := AggregateFleetDay(rosterFixture(), "2024-01-15", "")

	morning := buckets["Turno Mañana"]
	if len(morning) != 2 {
		t.Fatalf("expected 2 vehicles on Turno Mañana, got %d", len(morning))
	}
	if morning[0].VehicleNumber != 101 || morning[1].VehicleNumber != 103 {
		t.Errorf("bucket not ascending by vehicle number: %d, %d",
			morning[0].VehicleNumber, morning[1].VehicleNumber)
	}

	maint := buckets["Mantención"]
	if len(maint) != 1 || maint[0].Source != models.SourceStatus {
		t.Fatalf("expected vehicle 102 under Mantención as status, got %+v", maint)
	}

	none := buckets[NoShiftBucket]
	if len(none) != 1 || none[0].VehicleNumber != 200 {
		t.Fatalf("vehicle 200 must land in the sentinel bucket, got %+v", none)
	}
	if none[0].Source != models.SourceNone {
		t.Errorf("sentinel entries carry source none, got %s", none[0].Source)
	}
}

func TestAggregateFleetDayBranchFilter(t *testing.T) {
	buckets := AggregateFleetDay(rosterFixture(), "2024-01-15", "anf")

	total := 0
	for _, entries := range buckets {
		total += len(entries)
	}
	if total != 1 {
		t.Fatalf("expected only the anf vehicle, got %d entries", total)
	}
	if len(buckets[NoShiftBucket]) != 1 || buckets[NoShiftBucket][0].VehicleNumber != 200 {
		t.Fatalf("expected vehicle 200 in sentinel bucket, got %+v", buckets[NoShiftBucket])
	}
}
