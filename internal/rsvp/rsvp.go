// Package rsvp validates and applies attendance submissions. It is the
// only place an access code is ever allocated: the first transition into
// attending claims one atomically with the rest of the update.
package rsvp

import (
	"database/sql"
	"errors"
	"strings"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/pkg/utils"
)

var (
	ErrInvalidStatus          = errors.New("rsvp status must be attending or declined")
	ErrMealRequired           = errors.New("meal preference is required when attending")
	ErrPlusOneDetailsRequired = errors.New("plus one name and meal preference are required when your plus one is attending")

	// ErrAllocationExhausted is an operational condition, not user error:
	// with 32^6 possible codes it takes a pathological guest list (or a
	// broken random source) to hit it.
	ErrAllocationExhausted = errors.New("could not allocate a unique access code")
)

const maxAllocationAttempts = 10000

// ValidateSubmission checks an RSVP payload against the guest it is for
// and returns the update to persist. All validation happens here, before
// any store mutation. Companion fields are dropped entirely unless the
// guest is allowed a plus one, is attending, and marked the plus one as
// attending.
func ValidateSubmission(guest *models.Guest, req models.RSVPRequest) (gueststore.RSVPUpdate, error) {
	upd := gueststore.RSVPUpdate{}

	status := strings.TrimSpace(req.RSVPStatus)
	if status != models.RSVPAttending && status != models.RSVPDeclined {
		return upd, ErrInvalidStatus
	}
	upd.Status = status
	upd.Message = optional(req.Message)

	if status == models.RSVPAttending {
		meal := strings.TrimSpace(req.MealPreference)
		if meal == "" {
			return upd, ErrMealRequired
		}
		upd.MealPreference = &meal
	} else {
		upd.MealPreference = optional(req.MealPreference)
	}

	if guest.PlusOneAllowed && status == models.RSVPAttending && req.PlusOneAttending {
		name := strings.TrimSpace(req.PlusOneName)
		meal := strings.TrimSpace(req.PlusOneMealPreference)
		if name == "" || meal == "" {
			return upd, ErrPlusOneDetailsRequired
		}
		upd.PlusOneAttending = true
		upd.PlusOneName = &name
		upd.PlusOneMealPreference = &meal
	}

	return upd, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Apply persists a validated submission. On the first transition into
// attending it allocates an access code: generate a candidate, attempt
// the write, and treat a unique key rejection as a collision to retry.
// The unique key is the only arbiter; a generate-then-check flow would
// race under concurrent writers. A guest that already holds a code
// keeps it forever, whichever way the RSVP later changes.
func Apply(db *sql.DB, guest *models.Guest, upd gueststore.RSVPUpdate) (*models.Guest, error) {
	needsCode := upd.Status == models.RSVPAttending && guest.AccessCode == nil
	if !needsCode {
		return gueststore.ApplyRSVP(db, guest.Token, upd)
	}

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		code, err := utils.GenerateAccessCode()
		if err != nil {
			return nil, err
		}
		upd.AccessCode = &code

		updated, err := gueststore.ApplyRSVP(db, guest.Token, upd)
		switch {
		case errors.Is(err, gueststore.ErrDuplicateAccessCode):
			continue
		case errors.Is(err, gueststore.ErrCodeAlreadySet):
			// A concurrent submission for this same guest won the claim.
			upd.AccessCode = nil
			return gueststore.ApplyRSVP(db, guest.Token, upd)
		}
		return updated, err
	}

	return nil, utils.ErrorHandler(ErrAllocationExhausted, "access code allocation exhausted")
}
