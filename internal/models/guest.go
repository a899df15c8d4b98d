package models

import "time"

// RSVP status values. A guest starts out pending and moves to attending
// or declined through the RSVP submission flow.
const (
	RSVPPending   = "pending"
	RSVPAttending = "attending"
	RSVPDeclined  = "declined"
)

type Guest struct {
	ID                    int        `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Phone                 *string    `json:"phone,omitempty"`
	Token                 string     `json:"token"`
	RSVPStatus            string     `json:"rsvp_status"`
	PlusOneAllowed        bool       `json:"plus_one_allowed"`
	PlusOneName           *string    `json:"plus_one_name,omitempty"`
	PlusOneAttending      bool       `json:"plus_one_attending"`
	MealPreference        *string    `json:"meal_preference,omitempty"`
	PlusOneMealPreference *string    `json:"plus_one_meal_preference,omitempty"`
	Message               *string    `json:"message,omitempty"`
	AccessCode            *string    `json:"access_code,omitempty"`
	CheckedIn             bool       `json:"checked_in"`
	CheckedInAt           *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type CreateGuestRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	PlusOneAllowed bool   `json:"plus_one_allowed,omitempty"`
}

type RSVPRequest struct {
	RSVPStatus            string `json:"rsvp_status"`
	PlusOneName           string `json:"plus_one_name,omitempty"`
	PlusOneAttending      bool   `json:"plus_one_attending,omitempty"`
	MealPreference        string `json:"meal_preference,omitempty"`
	PlusOneMealPreference string `json:"plus_one_meal_preference,omitempty"`
	Message               string `json:"message,omitempty"`
}

type CheckInRequest struct {
	AccessCode string `json:"access_code"`
}

type GuestStats struct {
	TotalGuests int `json:"total_guests"`
	Attending   int `json:"attending"`
	Declined    int `json:"declined"`
	Pending     int `json:"pending"`
	PlusOnes    int `json:"plus_ones"`
	CheckedIn   int `json:"checked_in"`
}
