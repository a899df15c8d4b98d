package utils

import "os"

// InviteURL derives the personal RSVP link mailed to a guest from their
// invitation token.
func InviteURL(token string) string {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return baseURL + "/invite/" + token
}
