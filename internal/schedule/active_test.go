package schedule

import (
	"testing"
	"time"

	"flotavista-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func shiftEntry(vehicle int, start, end string) models.EnrichedVehicleEntry {
	return models.EnrichedVehicleEntry{
		VehicleNumber: vehicle,
		Source:        models.SourceShift,
		Label:         "Turno Noche",
		StartTime:     strPtr(start),
		EndTime:       strPtr(end),
	}
}

func TestIsActiveNowOvernight(t *testing.T) {
	entry := shiftEntry(100, "22:00", "06:00")
	anchor := "2024-01-15"

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"next day 01:00 inside window", time.Date(2024, 1, 16, 1, 0, 0, 0, time.UTC), true},
		{"anchor day 10:00 outside window", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), false},
		{"window start is inclusive", time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC), true},
		{"window end is exclusive", time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC), false},
		{"just before start", time.Date(2024, 1, 15, 21, 59, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := IsActiveNow(entry, anchor, c.now); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsActiveNowDaytime(t *testing.T) {
	entry := shiftEntry(100, "08:00", "16:00")
	anchor := "2024-01-15"

	if !IsActiveNow(entry, anchor, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)) {
		t.Error("noon must be inside an 08:00-16:00 window")
	}
	if IsActiveNow(entry, anchor, time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)) {
		t.Error("16:00 is the exclusive end of an 08:00-16:00 window")
	}
}

func TestIsActiveNowStatusAlwaysIncluded(t *testing.T) {
	entry := models.EnrichedVehicleEntry{
		VehicleNumber: 102,
		Source:        models.SourceStatus,
		Label:         "Mantención",
	}
	now := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)
	if !IsActiveNow(entry, "2024-01-15", now) {
		t.Error("status overrides are not clock-bounded")
	}
}

func TestIsActiveNowFailClosed(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	// No window at all
	bare := models.EnrichedVehicleEntry{VehicleNumber: 200, Source: models.SourceNone, Label: NoShiftBucket}
	if IsActiveNow(bare, "2024-01-15", now) {
		t.Error("entries without a window must be excluded")
	}

	// Unparseable window
	broken := shiftEntry(100, "25:99", "16:00")
	if IsActiveNow(broken, "2024-01-15", now) {
		t.Error("unparseable windows must fail closed")
	}

	// Bad anchor date
	ok := shiftEntry(100, "08:00", "16:00")
	if IsActiveNow(ok, "not-a-date", now) {
		t.Error("bad anchor date must fail closed")
	}
}
