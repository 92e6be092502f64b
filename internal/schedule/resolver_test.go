package schedule

import (
	"testing"

	"flotavista-backend/internal/models"
)

func intPtr(i int) *int { return &i }

func assignment(id string, vehicle int, name, start, end string, priority int, freeDay *int) models.VehicleShiftAssignment {
	return models.VehicleShiftAssignment{
		ID:            id,
		VehicleNumber: vehicle,
		ShiftName:     name,
		StartTime:     "08:00",
		EndTime:       "16:00",
		FreeDay:       freeDay,
		StartDate:     start,
		EndDate:       end,
		Priority:      priority,
	}
}

func override(vehicle int, status, start, end string) models.VehicleStatusOverride {
	return models.VehicleStatusOverride{
		VehicleNumber: vehicle,
		Status:        status,
		StartDate:     start,
		EndDate:       end,
		IsActive:      true,
	}
}

func TestResolvePriorityWins(t *testing.T) {
	// Scenario A: S2's narrower, higher-priority range wins inside its window
	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 100, "Turno Mañana", "2024-01-01", "2024-01-31", 1, nil),
		assignment("s2", 100, "Turno Tarde", "2024-01-10", "2024-01-20", 5, nil),
	}

	got := Resolve(assignments, nil, "2024-01-15")
	if got == nil || got.Label != "Turno Tarde" {
		t.Fatalf("expected Turno Tarde on 2024-01-15, got %+v", got)
	}
	if got.Source != models.SourceShift {
		t.Fatalf("expected source shift, got %s", got.Source)
	}

	got = Resolve(assignments, nil, "2024-01-05")
	if got == nil || got.Label != "Turno Mañana" {
		t.Fatalf("expected Turno Mañana on 2024-01-05, got %+v", got)
	}
}

func TestResolveOverrideBeatsShift(t *testing.T) {
	// Scenario B: a status override outranks even the highest-priority shift
	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 100, "Turno Mañana", "2024-01-01", "2024-01-31", 1, nil),
		assignment("s2", 100, "Turno Tarde", "2024-01-10", "2024-01-20", 5, nil),
	}
	overrides := []models.VehicleStatusOverride{
		override(100, "Mantención", "2024-01-15", "2024-01-16"),
	}

	got := Resolve(assignments, overrides, "2024-01-15")
	if got == nil || got.Source != models.SourceStatus || got.Label != "Mantención" {
		t.Fatalf("expected Mantención status, got %+v", got)
	}

	// One day outside the override range the shift is back
	got = Resolve(assignments, overrides, "2024-01-17")
	if got == nil || got.Label != "Turno Tarde" {
		t.Fatalf("expected Turno Tarde on 2024-01-17, got %+v", got)
	}
}

func TestResolveFreeDay(t *testing.T) {
	// Scenario C: 2024-01-15 is a Monday; free_day=1 flags the day off but
	// keeps the assignment's label
	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 100, "Turno Mañana", "2024-01-01", "2024-01-31", 1, intPtr(1)),
	}

	got := Resolve(assignments, nil, "2024-01-15")
	if got == nil {
		t.Fatal("free day must not resolve to no assignment")
	}
	if got.Source != models.SourceFreeDay {
		t.Fatalf("expected source free_day, got %s", got.Source)
	}
	if got.Label != "Turno Mañana" {
		t.Fatalf("free day keeps the shift label, got %q", got.Label)
	}

	// Tuesday is a normal shift day
	got = Resolve(assignments, nil, "2024-01-16")
	if got == nil || got.Source != models.SourceShift {
		t.Fatalf("expected source shift on Tuesday, got %+v", got)
	}
}

func TestResolveNoCoverage(t *testing.T) {
	// Scenario D
	if got := Resolve(nil, nil, "2024-01-15"); got != nil {
		t.Fatalf("expected nil for empty schedule, got %+v", got)
	}

	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 200, "Turno Mañana", "2024-02-01", "2024-02-28", 1, nil),
	}
	if got := Resolve(assignments, nil, "2024-01-15"); got != nil {
		t.Fatalf("expected nil outside range, got %+v", got)
	}
}

func TestResolveEqualPriorityFirstWins(t *testing.T) {
	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 100, "Turno Mañana", "2024-01-01", "2024-01-31", 3, nil),
		assignment("s2", 100, "Turno Tarde", "2024-01-01", "2024-01-31", 3, nil),
	}
	got := Resolve(assignments, nil, "2024-01-15")
	if got == nil || got.Label != "Turno Mañana" {
		t.Fatalf("equal priority must keep the first in input order, got %+v", got)
	}
}

func TestResolveOverlappingOverridesFirstWins(t *testing.T) {
	overrides := []models.VehicleStatusOverride{
		override(100, "Mantención", "2024-01-10", "2024-01-20"),
		override(100, "Accidente", "2024-01-12", "2024-01-18"),
	}
	got := Resolve(nil, overrides, "2024-01-15")
	if got == nil || got.Label != "Mantención" {
		t.Fatalf("overlapping overrides must keep the first in input order, got %+v", got)
	}
}

func TestResolveInactiveOverrideIgnored(t *testing.T) {
	inactive := override(100, "Mantención", "2024-01-10", "2024-01-20")
	inactive.IsActive = false
	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 100, "Turno Mañana", "2024-01-01", "2024-01-31", 1, nil),
	}
	got := Resolve(assignments, []models.VehicleStatusOverride{inactive}, "2024-01-15")
	if got == nil || got.Source != models.SourceShift {
		t.Fatalf("cancelled override must not win, got %+v", got)
	}
}

func TestResolveMalformedDatesFailClosed(t *testing.T) {
	assignments := []models.VehicleShiftAssignment{
		assignment("bad", 100, "Turno Roto", "2024-1-1", "2024-01-31", 9, nil),
		assignment("ok", 100, "Turno Mañana", "2024-01-01", "2024-01-31", 1, nil),
	}
	overrides := []models.VehicleStatusOverride{
		override(100, "Mantención", "not-a-date", "2024-01-31"),
	}

	// The malformed high-priority assignment and the malformed override are
	// both excluded; the valid assignment still resolves
	got := Resolve(assignments, overrides, "2024-01-15")
	if got == nil || got.Label != "Turno Mañana" {
		t.Fatalf("malformed records must fail closed, got %+v", got)
	}

	// A malformed query date matches nothing
	if got := Resolve(assignments, overrides, "15-01-2024"); got != nil {
		t.Fatalf("malformed query date must resolve to nil, got %+v", got)
	}
}

func TestResolveInclusiveBoundaries(t *testing.T) {
	assignments := []models.VehicleShiftAssignment{
		assignment("s1", 100, "Turno Mañana", "2024-01-10", "2024-01-20", 1, nil),
	}
	for _, date := range []string{"2024-01-10", "2024-01-20"} {
		if got := Resolve(assignments, nil, date); got == nil {
			t.Fatalf("range endpoints are inclusive, %s must resolve", date)
		}
	}
	if got := Resolve(assignments, nil, "2024-01-09"); got != nil {
		t.Fatalf("day before range must not resolve, got %+v", got)
	}
	if got := Resolve(assignments, nil, "2024-01-21"); got != nil {
		t.Fatalf("day after range must not resolve, got %+v", got)
	}
}

func TestISOWeekday(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2024-01-15", 1}, // Monday
		{"2024-01-20", 6}, // Saturday
		{"2024-01-21", 7}, // Sunday
		{"garbage", 0},
	}
	for _, c := range cases {
		if got := ISOWeekday(c.date); got != c.want {
			t.Errorf("ISOWeekday(%q) = %d, want %d", c.date, got, c.want)
		}
	}
}
