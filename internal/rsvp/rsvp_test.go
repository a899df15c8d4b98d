package rsvp_test

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/rsvp"
	"wedding_rsvp/internal/testutil"
	"wedding_rsvp/pkg/utils"
)

func TestValidateSubmission(t *testing.T) {
	plain := &models.Guest{PlusOneAllowed: false}
	withPlusOne := &models.Guest{PlusOneAllowed: true}

	tests := []struct {
		name    string
		guest   *models.Guest
		req     models.RSVPRequest
		wantErr error
	}{
		{
			name:    "rejects unknown status",
			guest:   plain,
			req:     models.RSVPRequest{RSVPStatus: "maybe"},
			wantErr: rsvp.ErrInvalidStatus,
		},
		{
			name:    "rejects pending as a submission target",
			guest:   plain,
			req:     models.RSVPRequest{RSVPStatus: "pending"},
			wantErr: rsvp.ErrInvalidStatus,
		},
		{
			name:    "attending requires a meal preference",
			guest:   plain,
			req:     models.RSVPRequest{RSVPStatus: "attending"},
			wantErr: rsvp.ErrMealRequired,
		},
		{
			name:    "attending with whitespace meal is still missing",
			guest:   plain,
			req:     models.RSVPRequest{RSVPStatus: "attending", MealPreference: "   "},
			wantErr: rsvp.ErrMealRequired,
		},
		{
			name:  "declining needs no meal",
			guest: plain,
			req:   models.RSVPRequest{RSVPStatus: "declined"},
		},
		{
			name:  "attending with meal is valid",
			guest: plain,
			req:   models.RSVPRequest{RSVPStatus: "attending", MealPreference: "vegetarian"},
		},
		{
			name:  "plus one needs name and meal",
			guest: withPlusOne,
			req: models.RSVPRequest{
				RSVPStatus:       "attending",
				MealPreference:   "vegetarian",
				PlusOneAttending: true,
				PlusOneName:      "Chidi",
			},
			wantErr: rsvp.ErrPlusOneDetailsRequired,
		},
		{
			name:  "complete plus one submission is valid",
			guest: withPlusOne,
			req: models.RSVPRequest{
				RSVPStatus:            "attending",
				MealPreference:        "vegetarian",
				PlusOneAttending:      true,
				PlusOneName:           "Chidi",
				PlusOneMealPreference: "vegan",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rsvp.ValidateSubmission(tc.guest, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateSubmissionIgnoresUnauthorizedPlusOne(t *testing.T) {
	guest := &models.Guest{PlusOneAllowed: false}

	upd, err := rsvp.ValidateSubmission(guest, models.RSVPRequest{
		RSVPStatus:            "attending",
		MealPreference:        "fish",
		PlusOneAttending:      true,
		PlusOneName:           "Tagalong",
		PlusOneMealPreference: "beef",
	})
	if err != nil {
		t.Fatalf("Submission should be valid with companion fields dropped: %v", err)
	}

	if upd.PlusOneAttending || upd.PlusOneName != nil || upd.PlusOneMealPreference != nil {
		t.Error("Companion details must be ignored when the guest has no plus one")
	}
}

func TestValidateSubmissionDropsCompanionOnDecline(t *testing.T) {
	guest := &models.Guest{PlusOneAllowed: true}

	upd, err := rsvp.ValidateSubmission(guest, models.RSVPRequest{
		RSVPStatus:            "declined",
		PlusOneAttending:      true,
		PlusOneName:           "Chidi",
		PlusOneMealPreference: "vegan",
	})
	if err != nil {
		t.Fatalf("Decline should be valid: %v", err)
	}

	if upd.PlusOneAttending || upd.PlusOneName != nil {
		t.Error("A declined RSVP cannot bring a companion")
	}
}

func submit(t *testing.T, db *sql.DB, guest *models.Guest, req models.RSVPRequest) *models.Guest {
	t.Helper()

	upd, err := rsvp.ValidateSubmission(guest, req)
	if err != nil {
		t.Fatalf("Validation failed: %v", err)
	}

	updated, err := rsvp.Apply(db, guest, upd)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	return updated
}

func TestApplyIssuesAccessCodeOnAttendance(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)

	updated := submit(t, db, guest, models.RSVPRequest{
		RSVPStatus:     "attending",
		MealPreference: "vegetarian",
	})

	if updated.AccessCode == nil {
		t.Fatal("Attending RSVP should have been issued an access code")
	}
	code := *updated.AccessCode
	if len(code) != utils.AccessCodeLength {
		t.Errorf("Expected %d character code, got %q", utils.AccessCodeLength, code)
	}
	for _, c := range code {
		if !strings.ContainsRune(utils.AccessCodeAlphabet, c) {
			t.Errorf("Code %q contains %q outside the allowed alphabet", code, c)
		}
	}
}

func TestApplyKeepsCodeOnResubmission(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)

	first := submit(t, db, guest, models.RSVPRequest{
		RSVPStatus:     "attending",
		MealPreference: "vegetarian",
	})
	code := *first.AccessCode

	second := submit(t, db, first, models.RSVPRequest{
		RSVPStatus:     "attending",
		MealPreference: "fish",
	})
	if second.AccessCode == nil || *second.AccessCode != code {
		t.Errorf("Resubmission changed the access code: %v", second.AccessCode)
	}
	if second.MealPreference == nil || *second.MealPreference != "fish" {
		t.Error("Resubmission did not update the meal preference")
	}

	// Changing their mind does not revoke the code either.
	declined := submit(t, db, second, models.RSVPRequest{RSVPStatus: "declined"})
	if declined.AccessCode == nil || *declined.AccessCode != code {
		t.Error("Declining revoked the access code")
	}
	if declined.RSVPStatus != models.RSVPDeclined {
		t.Errorf("Expected declined, got %q", declined.RSVPStatus)
	}
}

func TestApplyNeverIssuesCodeOnDecline(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)

	declined := submit(t, db, guest, models.RSVPRequest{RSVPStatus: "declined"})
	if declined.AccessCode != nil {
		t.Errorf("Declined guest must not hold an access code, got %q", *declined.AccessCode)
	}
}

// Confirms the allocator under contention: many guests confirming at
// once must each end up with their own code, with uniqueness enforced
// by the store rather than by luck.
func TestConcurrentAttendanceGetsDistinctCodes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	const n = 30
	guests := make([]*models.Guest, n)
	for i := 0; i < n; i++ {
		guests[i] = testutil.CreateTestGuest(t, db,
			fmt.Sprintf("Guest %d", i), fmt.Sprintf("guest%d@example.com", i), false)
	}

	var wg sync.WaitGroup
	results := make([]*models.Guest, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			upd, err := rsvp.ValidateSubmission(guests[i], models.RSVPRequest{
				RSVPStatus:     "attending",
				MealPreference: "chicken",
			})
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = rsvp.Apply(db, guests[i], upd)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Guest %d failed to RSVP: %v", i, errs[i])
		}
		if results[i].AccessCode == nil {
			t.Fatalf("Guest %d has no access code", i)
		}
		code := *results[i].AccessCode
		if prev, dup := seen[code]; dup {
			t.Fatalf("Guests %d and %d share access code %q", prev, i, code)
		}
		seen[code] = i
	}
}
