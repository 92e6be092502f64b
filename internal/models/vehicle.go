package models

// Vehicle is a fleet unit identified operationally by its vehicle_number
// (the number painted on the truck), not by its UUID.
type Vehicle struct {
	ID            string `json:"id" db:"id"`
	VehicleNumber int    `json:"vehicle_number" db:"vehicle_number"`
	Plate         string `json:"plate" db:"plate"`
	VehicleType   string `json:"vehicle_type" db:"vehicle_type"`
	BranchID      string `json:"branch_id" db:"branch_id"`
	IsActive      bool   `json:"is_active" db:"is_active"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
	UpdatedAt     int64  `json:"updated_at" db:"updated_at"`
}

// Branch is an operational base (sucursal) vehicles are attached to
type Branch struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Code      string `json:"code" db:"code"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// VehicleOnlineStatus is the live telemetry signal for one vehicle.
// IsOnline is tri-state: true, false, or nil for unknown. A vehicle absent
// from a status map is also unknown, never inferred offline.
type VehicleOnlineStatus struct {
	VehicleNumber int    `json:"vehicle_number"`
	IsOnline      *bool  `json:"is_online"`
	Timestamp     int64  `json:"timestamp"` // epoch millis of the last report
	Error         string `json:"error,omitempty"`
}

// FCMToken is a Firebase Cloud Messaging registration for a portal user
type FCMToken struct {
	ID         int    `json:"id" db:"id"`
	UserID     string `json:"user_id" db:"user_id"`
	Token      string `json:"token" db:"token"`
	DeviceType string `json:"device_type" db:"device_type"` // "ios", "android" or "web"
	CreatedAt  int64  `json:"created_at" db:"created_at"`
	UpdatedAt  int64  `json:"updated_at" db:"updated_at"`
}
