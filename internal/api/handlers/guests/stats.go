package guests

import (
	"net/http"

	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/internal/repositories/sqlconnect"
	"wedding_rsvp/pkg/utils"
)

// FUNC TO FETCH AGGREGATE RSVP STATS (admin)
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	stats, err := gueststore.Stats(db)
	if err != nil {
		utils.Logger.Errorf("failed to fetch guest stats: %v", err)
		utils.WriteError(w, "failed to retrieve statistics", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"stats": stats,
		},
	})
}
