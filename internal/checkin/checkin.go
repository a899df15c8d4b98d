// Package checkin performs the one-way arrival transition at the venue
// desk.
package checkin

import (
	"database/sql"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
)

// Result distinguishes a fresh check-in from the idempotent repeat, so
// the desk can show "already checked in at 14:32" instead of treating a
// double scan as a new arrival.
type Result struct {
	Guest            *models.Guest
	AlreadyCheckedIn bool
}

// CheckIn validates an access code and checks the guest in. Errors:
// gueststore.ErrNotFound when no guest holds the code,
// gueststore.ErrNotEligible when the guest exists but never confirmed
// attendance (or has since declined). Repeat calls with the same code
// return AlreadyCheckedIn without touching checked_in_at again.
func CheckIn(db *sql.DB, code string) (*Result, error) {
	guest, already, err := gueststore.ApplyCheckIn(db, code)
	if err != nil {
		return nil, err
	}
	return &Result{Guest: guest, AlreadyCheckedIn: already}, nil
}
