package models

// AssignmentSource says where a resolved day outcome came from
type AssignmentSource string

const (
	SourceStatus  AssignmentSource = "status"   // status override won
	SourceShift   AssignmentSource = "shift"    // regular shift assignment
	SourceFreeDay AssignmentSource = "free_day" // assigned, but it is the rostered day off
	SourceNone    AssignmentSource = "none"     // nothing covers the date
)

// ResolvedDayAssignment is the single effective outcome for one vehicle on
// one date. Derived and ephemeral, never persisted.
type ResolvedDayAssignment struct {
	VehicleNumber int              `json:"vehicle_number"`
	Source        AssignmentSource `json:"source"`
	Label         string           `json:"label"`
	StartTime     *string          `json:"start_time,omitempty"`
	EndTime       *string          `json:"end_time,omitempty"`
	Color         *string          `json:"color,omitempty"`
}

// EnrichedVehicleEntry is a resolved day assignment with the live online
// signal overlaid, as served to the dashboard
type EnrichedVehicleEntry struct {
	VehicleNumber   int              `json:"vehicle_number"`
	Source          AssignmentSource `json:"source"`
	Label           string           `json:"label"`
	StartTime       *string          `json:"start_time,omitempty"`
	EndTime         *string          `json:"end_time,omitempty"`
	Color           *string          `json:"color,omitempty"`
	IsOnline        *bool            `json:"is_online"`
	StatusTimestamp int64            `json:"status_timestamp,omitempty"`
	StatusError     string           `json:"status_error,omitempty"`
}

// CalendarMonth is one month-aligned block of a sequential date range,
// ready for 7-column grid rendering
type CalendarMonth struct {
	Anchor        string   `json:"anchor"` // first day of the block, "yyyy-MM-dd"
	Days          []string `json:"days"`
	LeadingBlanks int      `json:"leading_blanks"` // Monday-first weekday index of Anchor
}
