package guests

import (
	"encoding/json"
	"errors"
	"net/http"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/internal/repositories/sqlconnect"
	"wedding_rsvp/internal/rsvp"
	"wedding_rsvp/pkg/utils"
)

// FUNC TO FETCH A GUEST BY INVITATION TOKEN (public, token is the credential)
func GetGuestHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := r.PathValue("token")

	guest, err := gueststore.GetByToken(db, token)
	if err != nil {
		if errors.Is(err, gueststore.ErrNotFound) {
			utils.WriteError(w, "invalid invitation link", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to fetch guest: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"guest": guest,
		},
	})
}

// FUNC TO SUBMIT OR REVISE AN RSVP (public, token is the credential)
func SubmitRSVPHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := r.PathValue("token")

	guest, err := gueststore.GetByToken(db, token)
	if err != nil {
		if errors.Is(err, gueststore.ErrNotFound) {
			utils.WriteError(w, "invalid invitation link", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to fetch guest: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var req models.RSVPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	upd, err := rsvp.ValidateSubmission(guest, req)
	if err != nil {
		switch {
		case errors.Is(err, rsvp.ErrInvalidStatus),
			errors.Is(err, rsvp.ErrMealRequired),
			errors.Is(err, rsvp.ErrPlusOneDetailsRequired):
			utils.WriteError(w, err.Error(), http.StatusBadRequest)
		default:
			utils.WriteError(w, "invalid RSVP submission", http.StatusBadRequest)
		}
		return
	}

	updated, err := rsvp.Apply(db, guest, upd)
	if err != nil {
		if errors.Is(err, gueststore.ErrNotFound) {
			utils.WriteError(w, "invalid invitation link", http.StatusNotFound)
			return
		}
		if errors.Is(err, rsvp.ErrAllocationExhausted) {
			utils.Logger.Errorf("access code allocation exhausted for guest %d", guest.ID)
			utils.WriteError(w, "could not complete your RSVP, please try again", http.StatusInternalServerError)
			return
		}
		utils.Logger.Errorf("failed to apply RSVP for guest %d: %v", guest.ID, err)
		utils.WriteError(w, "could not complete your RSVP, please try again", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "Thank you for your RSVP!",
		"data": map[string]interface{}{
			"guest": updated,
		},
	})
}
