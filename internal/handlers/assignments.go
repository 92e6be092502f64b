package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"flotavista-backend/internal/database"
	"flotavista-backend/internal/models"
	"flotavista-backend/internal/schedule"
	"flotavista-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AssignmentRequest struct {
	VehicleNumber int    `json:"vehicle_number"`
	ShiftID       string `json:"shift_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Priority      int    `json:"priority"`
}

// GetVehicleAssignments returns one vehicle's assignments and overrides,
// newest range first, for the admin table
func GetVehicleAssignments(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(chi.URLParam(r, "number"))
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid vehicle number")
			return
		}

		vs, err := database.FetchVehicleSchedule(db, number)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch vehicle schedule")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"vehicle_number": number,
			"assignments":    vs.Assignments,
			"overrides":      vs.Overrides,
		})
	}
}

// CreateAssignment binds a vehicle to a shift for a date range. The shift's
// window is copied onto the assignment so later shift edits do not silently
// rewrite history.
func CreateAssignment(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssignmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.VehicleNumber <= 0 || req.ShiftID == "" {
			utils.RespondError(w, http.StatusBadRequest, "vehicle_number and shift_id are required")
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
		if req.Priority <= 0 {
			req.Priority = 1
		}

		var shift models.ShiftDefinition
		err := db.Get(&shift, "SELECT * FROM shift_definitions WHERE id = $1", req.ShiftID)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Shift not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		// Same-priority overlaps resolve first-created-wins; surface them to
		// the operator as a data-quality warning instead of rejecting
		var overlaps int
		err = db.Get(&overlaps, `
			SELECT COUNT(*) FROM vehicle_shift_assignments
			WHERE vehicle_number = $1 AND priority = $2
			  AND start_date <= $3 AND end_date >= $4
		`, req.VehicleNumber, req.Priority, req.EndDate, req.StartDate)
		if err == nil && overlaps > 0 {
			log.Printf("⚠️  vehicle %d gets a same-priority overlapping assignment (%d existing)",
				req.VehicleNumber, overlaps)
		}

		a := models.VehicleShiftAssignment{
			ID:            uuid.New().String(),
			VehicleNumber: req.VehicleNumber,
			ShiftID:       shift.ID,
			ShiftName:     shift.Name,
			StartTime:     shift.StartTime,
			EndTime:       shift.EndTime,
			FreeDay:       shift.FreeDay,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Priority:      req.Priority,
			CreatedAt:     time.Now().Unix(),
		}

		_, err = db.Exec(`
			INSERT INTO vehicle_shift_assignments
				(id, vehicle_number, shift_id, shift_name, start_time, end_time, free_day, start_date, end_date, priority, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, a.ID, a.VehicleNumber, a.ShiftID, a.ShiftName, a.StartTime, a.EndTime, a.FreeDay, a.StartDate, a.EndDate, a.Priority, a.CreatedAt)
		if err != nil {
			log.Printf("❌ Failed to create assignment: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create assignment")
			return
		}

		log.Printf("✅ Vehicle %d assigned to %s (%s → %s, priority %d)",
			a.VehicleNumber, a.ShiftName, a.StartDate, a.EndDate, a.Priority)
		utils.RespondJSON(w, http.StatusCreated, a)
	}
}

// UpdateAssignment edits the range or priority of an existing assignment
func UpdateAssignment(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
			Priority  int    `json:"priority"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
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
		if req.Priority <= 0 {
			req.Priority = 1
		}

		result, err := db.Exec(`
			UPDATE vehicle_shift_assignments
			SET start_date = $1, end_date = $2, priority = $3
			WHERE id = $4
		`, req.StartDate, req.EndDate, req.Priority, id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update assignment")
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			utils.RespondError(w, http.StatusNotFound, "Assignment not found")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// DeleteAssignment removes an assignment
func DeleteAssignment(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM vehicle_shift_assignments WHERE id = $1", id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete assignment")
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			utils.RespondError(w, http.StatusNotFound, "Assignment not found")
			return
		}

		log.Printf("🗑️  Assignment deleted: %s", id)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// GetVehicleCalendar resolves a vehicle day by day over a rolling window
// (?from=yyyy-MM-dd&days=30) and groups the window into month blocks for
// the calendar grid
func GetVehicleCalendar(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(chi.URLParam(r, "number"))
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid vehicle number")
			return
		}

		from := r.URL.Query().Get("from")
		if from == "" {
			from = time.Now().Format(schedule.DateLayout)
		}
		if !schedule.IsCanonicalDate(from) {
			utils.RespondError(w, http.StatusBadRequest, "from must be yyyy-MM-dd")
			return
		}
		days := 30
		if d := r.URL.Query().Get("days"); d != "" {
			if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 && parsed <= 93 {
				days = parsed
			}
		}

		vs, err := database.FetchVehicleSchedule(db, number)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch vehicle schedule")
			return
		}

		window := schedule.DateRange(from, days)
		resolved := make(map[string]*models.ResolvedDayAssignment, len(window))
		for _, day := range window {
			resolved[day] = schedule.Resolve(vs.Assignments, vs.Overrides, day)
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"vehicle_number": number,
			"months":         schedule.BuildMonths(window),
			"resolved":       resolved,
		})
	}
}
