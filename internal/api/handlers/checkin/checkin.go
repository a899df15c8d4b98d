package checkin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	workflow "wedding_rsvp/internal/checkin"
	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/internal/repositories/sqlconnect"
	"wedding_rsvp/pkg/utils"
)

// CheckinHandler routes /checkin by method: GET previews a code, POST
// performs the one-way transition.
func CheckinHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		LookupHandler(w, r)
	case http.MethodPost:
		CheckInHandler(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// FUNC TO LOOK UP A GUEST BY ACCESS CODE (venue desk, read-only)
func LookupHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		utils.WriteError(w, "access code is required", http.StatusBadRequest)
		return
	}

	guest, err := gueststore.GetByAccessCode(db, code)
	if err != nil {
		if errors.Is(err, gueststore.ErrNotFound) {
			utils.WriteError(w, "invalid access code", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to look up access code: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if guest.RSVPStatus != models.RSVPAttending {
		utils.WriteError(w, "guest has not confirmed attendance", http.StatusConflict)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"guest": guest,
		},
	})
}

// FUNC TO CHECK A GUEST IN (venue desk, one-way)
func CheckInHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var req models.CheckInRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.AccessCode) == "" {
		utils.WriteError(w, "access code is required", http.StatusBadRequest)
		return
	}

	result, err := workflow.CheckIn(db, req.AccessCode)
	if err != nil {
		if errors.Is(err, gueststore.ErrNotFound) {
			utils.WriteError(w, "invalid access code", http.StatusNotFound)
			return
		}
		if errors.Is(err, gueststore.ErrNotEligible) {
			utils.WriteError(w, "guest has not confirmed attendance", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to check in guest: %v", err)
		utils.WriteError(w, "failed to check in guest", http.StatusInternalServerError)
		return
	}

	message := fmt.Sprintf("%s has been checked in!", result.Guest.Name)
	if result.AlreadyCheckedIn {
		message = fmt.Sprintf("%s already checked in", result.Guest.Name)
		if result.Guest.CheckedInAt != nil {
			message = fmt.Sprintf("%s already checked in at %s",
				result.Guest.Name, result.Guest.CheckedInAt.Format("3:04 PM"))
		}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": message,
		"data": map[string]interface{}{
			"guest":              result.Guest,
			"already_checked_in": result.AlreadyCheckedIn,
		},
	})
}
