package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"flotavista-backend/internal/models"
	"flotavista-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetBranches returns the configured branches. Branches are a constant
// configuration table the dashboard filters by; they are served from the
// database, never hard-coded.
func GetBranches(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var branches []models.Branch
		if err := db.Select(&branches, `SELECT * FROM branches ORDER BY name ASC`); err != nil {
			log.Printf("❌ Failed to fetch branches: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch branches")
			return
		}
		utils.RespondJSON(w, http.StatusOK, branches)
	}
}

// GetVehicles returns the vehicle roster, optionally filtered by branch
// (?branch=) and including retired units with ?all=true
func GetVehicles(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM vehicles`
		var clauses []string
		var args []interface{}

		if r.URL.Query().Get("all") != "true" {
			clauses = append(clauses, "is_active = TRUE")
		}
		if branch := r.URL.Query().Get("branch"); branch != "" {
			args = append(args, branch)
			clauses = append(clauses, "branch_id = $1")
		}
		if len(clauses) > 0 {
			query += " WHERE " + clauses[0]
			if len(clauses) > 1 {
				query += " AND " + clauses[1]
			}
		}
		query += " ORDER BY vehicle_number ASC"

		var vehicles []models.Vehicle
		if err := db.Select(&vehicles, query, args...); err != nil {
			log.Printf("❌ Failed to fetch vehicles: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch vehicles")
			return
		}
		utils.RespondJSON(w, http.StatusOK, vehicles)
	}
}

type VehicleRequest struct {
	VehicleNumber int    `json:"vehicle_number"`
	Plate         string `json:"plate"`
	VehicleType   string `json:"vehicle_type"`
	BranchID      string `json:"branch_id"`
}

// CreateVehicle adds a unit to the roster
func CreateVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VehicleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.VehicleNumber <= 0 || req.Plate == "" || req.BranchID == "" {
			utils.RespondError(w, http.StatusBadRequest, "vehicle_number, plate and branch_id are required")
			return
		}

		var exists int
		if err := db.Get(&exists, "SELECT COUNT(*) FROM vehicles WHERE vehicle_number = $1", req.VehicleNumber); err == nil && exists > 0 {
			utils.RespondError(w, http.StatusConflict, "Vehicle number already in roster")
			return
		}

		now := time.Now().Unix()
		vehicle := models.Vehicle{
			ID:            uuid.New().String(),
			VehicleNumber: req.VehicleNumber,
			Plate:         req.Plate,
			VehicleType:   req.VehicleType,
			BranchID:      req.BranchID,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		_, err := db.Exec(`
			INSERT INTO vehicles (id, vehicle_number, plate, vehicle_type, branch_id, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, vehicle.ID, vehicle.VehicleNumber, vehicle.Plate, vehicle.VehicleType, vehicle.BranchID, vehicle.IsActive, vehicle.CreatedAt, vehicle.UpdatedAt)
		if err != nil {
			log.Printf("❌ Failed to create vehicle %d: %v", req.VehicleNumber, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create vehicle")
			return
		}

		log.Printf("✅ Vehicle %d added to roster (%s)", vehicle.VehicleNumber, vehicle.Plate)
		utils.RespondJSON(w, http.StatusCreated, vehicle)
	}
}

// UpdateVehicle edits plate, type or branch of a roster unit
func UpdateVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req VehicleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var existing models.Vehicle
		err := db.Get(&existing, "SELECT * FROM vehicles WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		_, err = db.Exec(`
			UPDATE vehicles
			SET plate = $1, vehicle_type = $2, branch_id = $3,
			    updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
			WHERE id = $4
		`, req.Plate, req.VehicleType, req.BranchID, id)
		if err != nil {
			log.Printf("❌ Failed to update vehicle %s: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update vehicle")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// RetireVehicle soft-deletes a unit: it drops out of rosters and dashboards
// but its history stays queryable
func RetireVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec(`
			UPDATE vehicles
			SET is_active = FALSE, updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
			WHERE id = $1
		`, id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to retire vehicle")
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			utils.RespondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}

		log.Printf("🚫 Vehicle retired: %s", id)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
