package guests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/internal/repositories/sqlconnect"
	"wedding_rsvp/pkg/utils"
)

// createTokenAttempts bounds the retry on the astronomically rare
// invitation token collision.
const createTokenAttempts = 3

// GuestsHandler routes the /guests collection by method.
func GuestsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ListGuestsHandler(w, r)
	case http.MethodPost:
		CreateGuestHandler(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// GuestHandler routes a single /guests/{token} resource by method. GET
// and PATCH are the guest's own self-service surface; DELETE is the
// administrative escape hatch and addresses the guest by numeric ID.
func GuestHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		GetGuestHandler(w, r)
	case http.MethodPatch:
		SubmitRSVPHandler(w, r)
	case http.MethodDelete:
		DeleteGuestHandler(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// FUNC TO CREATE A GUEST (admin)
func CreateGuestHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var req models.CreateGuestRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" || req.Email == "" {
		utils.WriteError(w, "name and email are required", http.StatusBadRequest)
		return
	}

	var guest *models.Guest
	for attempt := 0; attempt < createTokenAttempts; attempt++ {
		token, err := utils.GenerateToken()
		if err != nil {
			utils.WriteError(w, "failed to create guest", http.StatusInternalServerError)
			return
		}

		guest, err = gueststore.Create(db, gueststore.CreateParams{
			Name:           req.Name,
			Email:          req.Email,
			Phone:          req.Phone,
			Token:          token,
			PlusOneAllowed: req.PlusOneAllowed,
		})
		if errors.Is(err, gueststore.ErrDuplicateToken) {
			continue
		}
		if errors.Is(err, gueststore.ErrDuplicateEmail) {
			utils.WriteError(w, "a guest with this email already exists", http.StatusConflict)
			return
		}
		if err != nil {
			utils.Logger.Errorf("failed to create guest: %v", err)
			utils.WriteError(w, "failed to create guest", http.StatusInternalServerError)
			return
		}
		break
	}
	if guest == nil {
		utils.Logger.Error("invitation token collision persisted across retries")
		utils.WriteError(w, "failed to create guest", http.StatusInternalServerError)
		return
	}

	inviteURL := utils.InviteURL(guest.Token)

	if utils.EmailConfigured() {
		go func(email, name, url string) {
			if err := utils.SendInviteEmail(email, name, url); err != nil {
				utils.Logger.Errorf("failed to send invitation email to %s: %v", email, err)
			}
		}(guest.Email, guest.Name, inviteURL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": "Guest created successfully",
		"data": map[string]interface{}{
			"guest":      guest,
			"invite_url": inviteURL,
		},
	})
}

// FUNC TO LIST ALL GUESTS (admin)
func ListGuestsHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	guests, err := gueststore.List(db)
	if err != nil {
		utils.Logger.Errorf("failed to list guests: %v", err)
		utils.WriteError(w, "failed to retrieve guests", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"guests": guests,
			"count":  len(guests),
		},
	})
}

// FUNC TO DELETE A GUEST (admin)
func DeleteGuestHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	id, err := strconv.Atoi(r.PathValue("token"))
	if err != nil {
		utils.WriteError(w, "invalid guest ID", http.StatusBadRequest)
		return
	}

	if err := gueststore.Delete(db, id); err != nil {
		if errors.Is(err, gueststore.ErrNotFound) {
			utils.WriteError(w, "guest not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete guest %d: %v", id, err)
		utils.WriteError(w, "failed to delete guest", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "Guest deleted successfully",
	})
}
