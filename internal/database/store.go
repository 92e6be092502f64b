package database

import (
	"fmt"

	"flotavista-backend/internal/models"
	"flotavista-backend/internal/schedule"

	"github.com/jmoiron/sqlx"
)

// Rows are always ordered by created_at then id so the resolver's
// "first in input order wins" tie-break is pinned to insertion order
// instead of whatever the planner feels like.
const assignmentOrder = "ORDER BY created_at ASC, id ASC"

// FetchVehicleSchedule loads one vehicle's assignments and overrides,
// already shaped for the resolver
func FetchVehicleSchedule(db *sqlx.DB, vehicleNumber int) (schedule.VehicleSchedule, error) {
	vs := schedule.VehicleSchedule{VehicleNumber: vehicleNumber}

	err := db.Select(&vs.Assignments,
		`SELECT * FROM vehicle_shift_assignments WHERE vehicle_number = $1 `+assignmentOrder,
		vehicleNumber)
	if err != nil {
		return vs, fmt.Errorf("failed to load assignments for vehicle %d: %w", vehicleNumber, err)
	}

	err = db.Select(&vs.Overrides,
		`SELECT * FROM vehicle_status_overrides WHERE vehicle_number = $1 `+assignmentOrder,
		vehicleNumber)
	if err != nil {
		return vs, fmt.Errorf("failed to load overrides for vehicle %d: %w", vehicleNumber, err)
	}
	return vs, nil
}

// FetchRoster loads every active vehicle (optionally narrowed to a branch)
// with its assignments and overrides, in three queries grouped in memory
func FetchRoster(db *sqlx.DB, branchID string) ([]schedule.VehicleSchedule, error) {
	var vehicles []models.Vehicle
	query := `SELECT * FROM vehicles WHERE is_active = TRUE`
	args := []interface{}{}
	if branchID != "" {
		query += ` AND branch_id = $1`
		args = append(args, branchID)
	}
	query += ` ORDER BY vehicle_number ASC`
	if err := db.Select(&vehicles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}

	var assignments []models.VehicleShiftAssignment
	if err := db.Select(&assignments,
		`SELECT * FROM vehicle_shift_assignments `+assignmentOrder); err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	var overrides []models.VehicleStatusOverride
	if err := db.Select(&overrides,
		`SELECT * FROM vehicle_status_overrides `+assignmentOrder); err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	byVehicleA := make(map[int][]models.VehicleShiftAssignment)
	for _, a := range assignments {
		byVehicleA[a.VehicleNumber] = append(byVehicleA[a.VehicleNumber], a)
	}
	byVehicleO := make(map[int][]models.VehicleStatusOverride)
	for _, o := range overrides {
		byVehicleO[o.VehicleNumber] = append(byVehicleO[o.VehicleNumber], o)
	}

	roster := make([]schedule.VehicleSchedule, 0, len(vehicles))
	for _, v := range vehicles {
		roster = append(roster, schedule.VehicleSchedule{
			VehicleNumber: v.VehicleNumber,
			BranchID:      v.BranchID,
			Assignments:   byVehicleA[v.VehicleNumber],
			Overrides:     byVehicleO[v.VehicleNumber],
		})
	}
	return roster, nil
}

// RosterVehicleNumbers extracts the vehicle numbers of a roster, the shape
// the live-status provider wants
func RosterVehicleNumbers(roster []schedule.VehicleSchedule) []int {
	nums := make([]int, 0, len(roster))
	for _, vs := range roster {
		nums = append(nums, vs.VehicleNumber)
	}
	return nums
}

// AdminFCMTokens returns the FCM tokens of all admin users, for override
// alert pushes
func AdminFCMTokens(db *sqlx.DB) ([]string, error) {
	var tokens []string
	err := db.Select(&tokens, `
		SELECT t.token
		FROM fcm_tokens t
		INNER JOIN users u ON t.user_id = u.id
		WHERE u.role = 'admin'
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin FCM tokens: %w", err)
	}
	return tokens, nil
}
