package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"flotavista-backend/internal/models"
	"flotavista-backend/internal/schedule"
	"flotavista-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ShiftDefinitionRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	FreeDay   *int   `json:"free_day"`
}

func (r *ShiftDefinitionRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if _, err := time.Parse(schedule.ClockLayout, r.StartTime); err != nil {
		return "start_time must be HH:MM"
	}
	if _, err := time.Parse(schedule.ClockLayout, r.EndTime); err != nil {
		return "end_time must be HH:MM"
	}
	if r.FreeDay != nil && (*r.FreeDay < 1 || *r.FreeDay > 7) {
		return "free_day must be an ISO weekday (1=Monday .. 7=Sunday)"
	}
	return ""
}

// GetShiftDefinitions returns all named shifts
func GetShiftDefinitions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var shifts []models.ShiftDefinition
		err := db.Select(&shifts, `SELECT * FROM shift_definitions ORDER BY start_time ASC, name ASC`)
		if err != nil {
			log.Printf("❌ Failed to fetch shifts: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch shifts")
			return
		}
		utils.RespondJSON(w, http.StatusOK, shifts)
	}
}

// CreateShiftDefinition creates a named shift window
func CreateShiftDefinition(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShiftDefinitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			utils.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		now := time.Now().Unix()
		shift := models.ShiftDefinition{
			ID:        uuid.New().String(),
			Name:      req.Name,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			FreeDay:   req.FreeDay,
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err := db.Exec(`
			INSERT INTO shift_definitions (id, name, start_time, end_time, free_day, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, shift.ID, shift.Name, shift.StartTime, shift.EndTime, shift.FreeDay, shift.CreatedAt, shift.UpdatedAt)
		if err != nil {
			log.Printf("❌ Failed to create shift %q: %v", req.Name, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create shift")
			return
		}

		log.Printf("✅ Shift created: %s (%s-%s)", shift.Name, shift.StartTime, shift.EndTime)
		utils.RespondJSON(w, http.StatusCreated, shift)
	}
}

// UpdateShiftDefinition updates a shift window. Existing assignments keep
// their denormalized copy of the old window; the portal re-assigns when the
// change should apply going forward.
func UpdateShiftDefinition(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req ShiftDefinitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			utils.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		var existing models.ShiftDefinition
		err := db.Get(&existing, "SELECT * FROM shift_definitions WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Shift not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		_, err = db.Exec(`
			UPDATE shift_definitions
			SET name = $1, start_time = $2, end_time = $3, free_day = $4,
			    updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
			WHERE id = $5
		`, req.Name, req.StartTime, req.EndTime, req.FreeDay, id)
		if err != nil {
			log.Printf("❌ Failed to update shift %s: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update shift")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// DeleteShiftDefinition removes a shift that has no assignments referencing it
func DeleteShiftDefinition(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var refs int
		if err := db.Get(&refs, "SELECT COUNT(*) FROM vehicle_shift_assignments WHERE shift_id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if refs > 0 {
			utils.RespondError(w, http.StatusConflict, "Shift has assignments and cannot be deleted")
			return
		}

		result, err := db.Exec("DELETE FROM shift_definitions WHERE id = $1", id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete shift")
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			utils.RespondError(w, http.StatusNotFound, "Shift not found")
			return
		}

		log.Printf("🗑️  Shift deleted: %s", id)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
