package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"flotavista-backend/internal/database"
	"flotavista-backend/internal/livestatus"
	"flotavista-backend/internal/models"
	"flotavista-backend/internal/schedule"
	"flotavista-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// fleetDayParams pulls the shared ?date= and ?branch= query parameters.
// date defaults to today.
func fleetDayParams(r *http.Request) (date, branch string, ok bool) {
	date = r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(schedule.DateLayout)
	}
	if !schedule.IsCanonicalDate(date) {
		return "", "", false
	}
	return date, r.URL.Query().Get("branch"), true
}

// GetFleetDay serves the grouped fleet summary for one date: every vehicle
// resolved and bucketed by label, with the last committed live statuses
// overlaid. A fresh status fetch is kicked off in the background so the
// response never blocks on the tracker; the dashboard gets the update over
// the websocket when it commits.
func GetFleetDay(db *sqlx.DB, refresher *livestatus.Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, branch, ok := fleetDayParams(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "date must be yyyy-MM-dd")
			return
		}

		roster, err := database.FetchRoster(db, branch)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch roster")
			return
		}

		buckets := schedule.AggregateFleetDay(roster, date, "")
		merged := livestatus.Merge(buckets, refresher.Snapshot())

		// Date or branch changes are refresh triggers per the dashboard
		// contract; run one in the background for this roster
		nums := database.RosterVehicleNumbers(roster)
		go refresher.Refresh(context.Background(), nums)

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"date":    date,
			"branch":  branch,
			"buckets": merged,
		})
	}
}

// GetActiveFleetDay is GetFleetDay narrowed to vehicles whose window covers
// the current instant (or ?now= in RFC3339 for historic views)
func GetActiveFleetDay(db *sqlx.DB, refresher *livestatus.Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, branch, ok := fleetDayParams(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "date must be yyyy-MM-dd")
			return
		}

		now := time.Now()
		if raw := r.URL.Query().Get("now"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "now must be RFC3339")
				return
			}
			now = parsed
		}

		roster, err := database.FetchRoster(db, branch)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch roster")
			return
		}

		buckets := schedule.AggregateFleetDay(roster, date, "")
		merged := livestatus.Merge(buckets, refresher.Snapshot())

		active := make(map[string][]models.EnrichedVehicleEntry)
		for label, entries := range merged {
			for _, e := range entries {
				if schedule.IsActiveNow(e, date, now) {
					active[label] = append(active[label], e)
				}
			}
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"date":    date,
			"branch":  branch,
			"now":     now.Format(time.RFC3339),
			"buckets": active,
		})
	}
}

// RefreshFleetStatus is the manual refresh trigger: it fetches live
// statuses synchronously and commits them unless a newer refresh won the
// race. The refresher's commit hook pushes the snapshot to dashboard
// websocket clients.
func RefreshFleetStatus(db *sqlx.DB, refresher *livestatus.Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch := r.URL.Query().Get("branch")

		roster, err := database.FetchRoster(db, branch)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch roster")
			return
		}

		nums := database.RosterVehicleNumbers(roster)
		log.Printf("🔄 Manual live-status refresh for %d vehicles", len(nums))
		statuses := refresher.Refresh(r.Context(), nums)

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"statuses": statuses,
		})
	}
}
