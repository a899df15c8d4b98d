package gueststore

import (
	"database/sql"
	"errors"
	"strings"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/pkg/utils"
)

// Sentinel errors surfaced to handlers. Everything else coming out of
// this package is a wrapped storage failure.
var (
	ErrNotFound            = errors.New("guest not found")
	ErrDuplicateEmail      = errors.New("a guest with this email already exists")
	ErrDuplicateToken      = errors.New("invitation token already in use")
	ErrDuplicateAccessCode = errors.New("access code already in use")
	ErrNotEligible         = errors.New("guest has not confirmed attendance")
	ErrCodeAlreadySet      = errors.New("guest already holds an access code")
)

const guestColumns = `id, name, email, phone, token, rsvp_status, plus_one_allowed,
	plus_one_name, plus_one_attending, meal_preference, plus_one_meal_preference,
	message, access_code, checked_in, checked_in_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGuest(row rowScanner) (*models.Guest, error) {
	var g models.Guest
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Email,
		&g.Phone,
		&g.Token,
		&g.RSVPStatus,
		&g.PlusOneAllowed,
		&g.PlusOneName,
		&g.PlusOneAttending,
		&g.MealPreference,
		&g.PlusOneMealPreference,
		&g.Message,
		&g.AccessCode,
		&g.CheckedIn,
		&g.CheckedInAt,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// isDuplicate reports whether err is a MySQL unique key violation on the
// given key name (error 1062 carries the key in its message).
func isDuplicate(err error, key string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "Duplicate entry") &&
		strings.Contains(err.Error(), key)
}

type CreateParams struct {
	Name           string
	Email          string
	Phone          string
	Token          string
	PlusOneAllowed bool
}

// Create inserts a new guest in the pending state, with no access code
// and not checked in. Email and token collisions are reported as their
// respective sentinel errors so the caller can react (conflict response
// for the email, fresh token retry for the token).
func Create(db *sql.DB, p CreateParams) (*models.Guest, error) {
	var phone interface{}
	if p.Phone != "" {
		phone = p.Phone
	}

	res, err := db.Exec(`
		INSERT INTO guests (name, email, phone, token, plus_one_allowed)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.Email, phone, p.Token, p.PlusOneAllowed)
	if err != nil {
		switch {
		case isDuplicate(err, "uq_guests_email"):
			return nil, ErrDuplicateEmail
		case isDuplicate(err, "uq_guests_token"):
			return nil, ErrDuplicateToken
		}
		return nil, utils.ErrorHandler(err, "failed to create guest")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to get last insert ID")
	}

	return getBy(db, "id = ?", id)
}

func getBy(db *sql.DB, where string, arg interface{}) (*models.Guest, error) {
	row := db.QueryRow(`SELECT `+guestColumns+` FROM guests WHERE `+where, arg)
	guest, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch guest")
	}
	return guest, nil
}

func GetByToken(db *sql.DB, token string) (*models.Guest, error) {
	return getBy(db, "token = ?", token)
}

// GetByAccessCode looks a guest up by access code. Codes are stored
// uppercase, so the lookup normalizes its input the same way.
func GetByAccessCode(db *sql.DB, code string) (*models.Guest, error) {
	return getBy(db, "access_code = ?", NormalizeAccessCode(code))
}

func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// List returns every guest, newest first.
func List(db *sql.DB) ([]models.Guest, error) {
	rows, err := db.Query(`SELECT ` + guestColumns + ` FROM guests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to list guests")
	}
	defer rows.Close()

	guests := []models.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan guest row")
		}
		guests = append(guests, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate guest rows")
	}
	return guests, nil
}

type RSVPUpdate struct {
	Status                string
	PlusOneName           *string
	PlusOneAttending      bool
	MealPreference        *string
	PlusOneMealPreference *string
	Message               *string

	// AccessCode is set only when a brand-new code is being claimed as
	// part of this update. Nil leaves the stored code untouched.
	AccessCode *string
}

// ApplyRSVP writes the full RSVP payload in a single UPDATE so a guest
// can never be observed with a new status but without the access code
// that came with it.
//
// When a new code is being claimed the statement is doubly guarded: the
// unique key on access_code arbitrates between guests racing for the
// same candidate (ErrDuplicateAccessCode, regenerate and retry), and the
// access_code IS NULL predicate keeps a concurrent resubmission for the
// same guest from overwriting a code that was just issued
// (ErrCodeAlreadySet, retry without claiming).
func ApplyRSVP(db *sql.DB, token string, upd RSVPUpdate) (*models.Guest, error) {
	if upd.AccessCode != nil {
		code := NormalizeAccessCode(*upd.AccessCode)
		res, err := db.Exec(`
			UPDATE guests
			SET rsvp_status = ?, plus_one_name = ?, plus_one_attending = ?,
				meal_preference = ?, plus_one_meal_preference = ?, message = ?,
				access_code = ?, updated_at = NOW()
			WHERE token = ? AND access_code IS NULL
		`, upd.Status, upd.PlusOneName, upd.PlusOneAttending, upd.MealPreference,
			upd.PlusOneMealPreference, upd.Message, code, token)
		if err != nil {
			if isDuplicate(err, "uq_guests_access_code") {
				return nil, ErrDuplicateAccessCode
			}
			return nil, utils.ErrorHandler(err, "failed to update RSVP")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return nil, utils.ErrorHandler(err, "failed to read RSVP update result")
		}
		if rows == 0 {
			// Either the token is unknown or another writer set a code
			// between our read and this write.
			if _, err := GetByToken(db, token); err != nil {
				return nil, err
			}
			return nil, ErrCodeAlreadySet
		}
		return GetByToken(db, token)
	}

	_, err := db.Exec(`
		UPDATE guests
		SET rsvp_status = ?, plus_one_name = ?, plus_one_attending = ?,
			meal_preference = ?, plus_one_meal_preference = ?, message = ?,
			updated_at = NOW()
		WHERE token = ?
	`, upd.Status, upd.PlusOneName, upd.PlusOneAttending, upd.MealPreference,
		upd.PlusOneMealPreference, upd.Message, token)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to update RSVP")
	}

	return GetByToken(db, token)
}

// ApplyCheckIn performs the one-way check-in transition as a single
// conditional UPDATE. The eligibility check and the write happen in the
// same statement, so two concurrent attempts cannot both record a fresh
// check-in. The bool result reports the idempotent already-checked-in
// outcome, with the guest carrying the original checked_in_at.
func ApplyCheckIn(db *sql.DB, code string) (*models.Guest, bool, error) {
	code = NormalizeAccessCode(code)

	res, err := db.Exec(`
		UPDATE guests
		SET checked_in = TRUE, checked_in_at = NOW(), updated_at = NOW()
		WHERE access_code = ? AND rsvp_status = ? AND checked_in = FALSE
	`, code, models.RSVPAttending)
	if err != nil {
		return nil, false, utils.ErrorHandler(err, "failed to check in guest")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, false, utils.ErrorHandler(err, "failed to read check-in result")
	}

	guest, err := GetByAccessCode(db, code)
	if err != nil {
		return nil, false, err
	}

	if rows == 1 {
		return guest, false, nil
	}
	if guest.CheckedIn {
		return guest, true, nil
	}
	return nil, false, ErrNotEligible
}

// Stats returns aggregate RSVP counts in one read-only query.
func Stats(db *sql.DB) (*models.GuestStats, error) {
	var s models.GuestStats
	err := db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(rsvp_status = 'attending'), 0),
			COALESCE(SUM(rsvp_status = 'declined'), 0),
			COALESCE(SUM(rsvp_status = 'pending'), 0),
			COALESCE(SUM(plus_one_attending = TRUE), 0),
			COALESCE(SUM(checked_in = TRUE), 0)
		FROM guests
	`).Scan(&s.TotalGuests, &s.Attending, &s.Declined, &s.Pending, &s.PlusOnes, &s.CheckedIn)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch guest stats")
	}
	return &s, nil
}

// Delete removes a guest entirely. Administrative escape hatch, not part
// of the normal guest lifecycle.
func Delete(db *sql.DB, id int) error {
	res, err := db.Exec(`DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return utils.ErrorHandler(err, "failed to delete guest")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return utils.ErrorHandler(err, "failed to read delete result")
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
