package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"os"

	"wedding_rsvp/pkg/utils"
)

// FUNC TO LOG IN AS ADMIN
//
// Exchanges the shared admin password for a short-lived session token so
// the dashboard never stores the password itself. The password may be
// configured directly (ADMIN_PASSWORD) or as an argon2id hash
// (ADMIN_PASSWORD_HASH); the hash wins when both are set.
func AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	type loginRequest struct {
		Password string `json:"password"`
	}

	var req loginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Password == "" {
		utils.WriteError(w, "password is required", http.StatusBadRequest)
		return
	}

	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	switch {
	case passwordHash != "":
		if err := utils.VerifyPassword(req.Password, passwordHash); err != nil {
			utils.WriteError(w, "incorrect password", http.StatusForbidden)
			return
		}
	case adminPassword != "":
		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) != 1 {
			utils.WriteError(w, "incorrect password", http.StatusForbidden)
			return
		}
	default:
		utils.Logger.Error("neither ADMIN_PASSWORD nor ADMIN_PASSWORD_HASH is set")
		utils.WriteError(w, "admin access is not configured", http.StatusInternalServerError)
		return
	}

	tokenString, err := utils.SignAdminToken()
	if err != nil {
		utils.Logger.Errorf("could not create login token: %v", err)
		utils.WriteError(w, "error signing in", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "login successful",
		"token":   tokenString,
	})
}
