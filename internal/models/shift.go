package models

// ShiftDefinition is a named recurring daily work window with an optional
// weekly day off (ISO weekday, Monday=1 .. Sunday=7)
type ShiftDefinition struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	StartTime string `json:"start_time" db:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time" db:"end_time"`     // "HH:MM"
	FreeDay   *int   `json:"free_day" db:"free_day"`     // nil = no rostered day off
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// VehicleShiftAssignment binds a vehicle to a shift for an inclusive date
// range. The shift's window is denormalized onto the row so resolution never
// needs a join. Higher priority wins when ranges overlap.
type VehicleShiftAssignment struct {
	ID            string `json:"id" db:"id"`
	VehicleNumber int    `json:"vehicle_number" db:"vehicle_number"`
	ShiftID       string `json:"shift_id" db:"shift_id"`
	ShiftName     string `json:"shift_name" db:"shift_name"`
	StartTime     string `json:"start_time" db:"start_time"`
	EndTime       string `json:"end_time" db:"end_time"`
	FreeDay       *int   `json:"free_day" db:"free_day"`
	StartDate     string `json:"start_date" db:"start_date"` // "yyyy-MM-dd", inclusive
	EndDate       string `json:"end_date" db:"end_date"`     // "yyyy-MM-dd", inclusive
	Priority      int    `json:"priority" db:"priority"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
}

// VehicleStatusOverride is an exceptional vehicle state (maintenance,
// vacation, accident...) for an inclusive date range. An active override
// always outranks any shift assignment on the same date.
type VehicleStatusOverride struct {
	ID            string  `json:"id" db:"id"`
	VehicleNumber int     `json:"vehicle_number" db:"vehicle_number"`
	Status        string  `json:"status" db:"status"`
	Color         *string `json:"color" db:"color"`
	StartDate     string  `json:"start_date" db:"start_date"`
	EndDate       string  `json:"end_date" db:"end_date"`
	Comments      *string `json:"comments" db:"comments"`
	IsActive      bool    `json:"is_active" db:"is_active"`
	CreatedAt     int64   `json:"created_at" db:"created_at"`
}
