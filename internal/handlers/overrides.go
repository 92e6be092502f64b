package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"flotavista-backend/internal/database"
	"flotavista-backend/internal/models"
	"flotavista-backend/internal/schedule"
	"flotavista-backend/internal/services"
	"flotavista-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type OverrideRequest struct {
	VehicleNumber int     `json:"vehicle_number"`
	Status        string  `json:"status"`
	Color         *string `json:"color"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Comments      *string `json:"comments"`
}

// GetOverrides lists status overrides, optionally for one vehicle
// (?vehicle=) and including cancelled ones with ?all=true
func GetOverrides(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM vehicle_status_overrides`
		var clauses []string
		var args []interface{}

		if r.URL.Query().Get("all") != "true" {
			clauses = append(clauses, "is_active = TRUE")
		}
		if v := r.URL.Query().Get("vehicle"); v != "" {
			number, err := strconv.Atoi(v)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "Invalid vehicle number")
				return
			}
			args = append(args, number)
			clauses = append(clauses, "vehicle_number = $1")
		}
		if len(clauses) > 0 {
			query += " WHERE " + clauses[0]
			if len(clauses) > 1 {
				query += " AND " + clauses[1]
			}
		}
		query += " ORDER BY created_at ASC, id ASC"

		var overrides []models.VehicleStatusOverride
		if err := db.Select(&overrides, query, args...); err != nil {
			log.Printf("❌ Failed to fetch overrides: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch overrides")
			return
		}
		utils.RespondJSON(w, http.StatusOK, overrides)
	}
}

// CreateOverride puts a vehicle into an exceptional status for a date range
// and pushes an FCM alert to admins. fcm may be nil when push is disabled.
func CreateOverride(db *sqlx.DB, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OverrideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.VehicleNumber <= 0 || req.Status == "" {
			utils.RespondError(w, http.StatusBadRequest, "vehicle_number and status are required")
			return
		}
		if !schedule.IsCanonicalDate(req.StartDate) || !schedule.IsCanonicalDate(req.EndDate) {
			utils.RespondError(w, http.StatusBadRequest, "start_date and end_date must be yyyy-MM-dd")
			return
		}
		if req.EndDate < req.StartDate {
			utils.RespondError(w, http.StatusBadRequest, "end_date must not precede start_date")
			return
		}

		// Overlapping active overrides resolve first-created-wins; warn the
		// operator rather than silently stacking them
		var overlaps int
		err := db.Get(&overlaps, `
			SELECT COUNT(*) FROM vehicle_status_overrides
			WHERE vehicle_number = $1 AND is_active = TRUE
			  AND start_date <= $2 AND end_date >= $3
		`, req.VehicleNumber, req.EndDate, req.StartDate)
		if err == nil && overlaps > 0 {
			log.Printf("⚠️  vehicle %d already has %d active override(s) overlapping %s..%s",
				req.VehicleNumber, overlaps, req.StartDate, req.EndDate)
		}

		ov := models.VehicleStatusOverride{
			ID:            uuid.New().String(),
			VehicleNumber: req.VehicleNumber,
			Status:        req.Status,
			Color:         req.Color,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Comments:      req.Comments,
			IsActive:      true,
			CreatedAt:     time.Now().Unix(),
		}

		_, err = db.Exec(`
			INSERT INTO vehicle_status_overrides
				(id, vehicle_number, status, color, start_date, end_date, comments, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, ov.ID, ov.VehicleNumber, ov.Status, ov.Color, ov.StartDate, ov.EndDate, ov.Comments, ov.IsActive, ov.CreatedAt)
		if err != nil {
			log.Printf("❌ Failed to create override: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create override")
			return
		}

		log.Printf("✅ Vehicle %d set to %q (%s → %s)", ov.VehicleNumber, ov.Status, ov.StartDate, ov.EndDate)

		if fcm != nil {
			go func() {
				tokens, err := database.AdminFCMTokens(db)
				if err != nil {
					log.Printf("⚠️  Skipping override alert: %v", err)
					return
				}
				if err := fcm.SendOverrideAlert(tokens, ov.VehicleNumber, ov.Status, ov.StartDate, ov.EndDate); err != nil {
					log.Printf("⚠️  Override alert failed: %v", err)
				}
			}()
		}

		utils.RespondJSON(w, http.StatusCreated, ov)
	}
}

// CancelOverride deactivates an override so the vehicle falls back to its
// shift assignment from the next resolution on
func CancelOverride(db *sqlx.DB, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var ov models.VehicleStatusOverride
		err := db.Get(&ov, "SELECT * FROM vehicle_status_overrides WHERE id = $1 AND is_active = TRUE", id)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, "Active override not found")
			return
		}

		_, err = db.Exec("UPDATE vehicle_status_overrides SET is_active = FALSE WHERE id = $1", id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to cancel override")
			return
		}

		log.Printf("↩️  Override %q cancelled for vehicle %d", ov.Status, ov.VehicleNumber)

		if fcm != nil {
			go func() {
				tokens, err := database.AdminFCMTokens(db)
				if err != nil {
					log.Printf("⚠️  Skipping cancel alert: %v", err)
					return
				}
				if err := fcm.SendOverrideCancelledAlert(tokens, ov.VehicleNumber, ov.Status); err != nil {
					log.Printf("⚠️  Cancel alert failed: %v", err)
				}
			}()
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
