package gueststore_test

import (
	"database/sql"
	"errors"
	"testing"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/internal/testutil"
)

func strPtr(s string) *string { return &s }

// confirmWithCode confirms attendance for a guest while claiming a
// specific access code, bypassing the allocator so tests control the
// code that ends up in the table.
func confirmWithCode(t *testing.T, db *sql.DB, guest *models.Guest, code string) *models.Guest {
	t.Helper()
	updated, err := gueststore.ApplyRSVP(db, guest.Token, gueststore.RSVPUpdate{
		Status:         models.RSVPAttending,
		MealPreference: strPtr("chicken"),
		AccessCode:     &code,
	})
	if err != nil {
		t.Fatalf("Failed to confirm attendance with code %s: %v", code, err)
	}
	return updated
}

func TestCreateGuestDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", true)

	if guest.RSVPStatus != models.RSVPPending {
		t.Errorf("Expected status pending, got %q", guest.RSVPStatus)
	}
	if guest.CheckedIn {
		t.Error("New guest should not be checked in")
	}
	if guest.AccessCode != nil {
		t.Errorf("New guest should have no access code, got %q", *guest.AccessCode)
	}
	if guest.CheckedInAt != nil {
		t.Error("New guest should have no check-in timestamp")
	}
	if !guest.PlusOneAllowed {
		t.Error("Expected plus_one_allowed to be true")
	}
	if guest.CreatedAt.IsZero() || guest.UpdatedAt.IsZero() {
		t.Error("Expected bookkeeping timestamps to be set")
	}
}

func TestCreateGuestDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)

	first := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)

	_, err := gueststore.Create(db, gueststore.CreateParams{
		Name:  "Impostor",
		Email: "amara@example.com",
		Token: "tok_does_not_matter",
	})
	if !errors.Is(err, gueststore.ErrDuplicateEmail) {
		t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
	}

	// The first guest is unaffected.
	got, err := gueststore.GetByToken(db, first.Token)
	if err != nil {
		t.Fatalf("First guest should still exist: %v", err)
	}
	if got.Name != "Amara Obi" {
		t.Errorf("First guest mutated: got name %q", got.Name)
	}
}

func TestCreateGuestDuplicateToken(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := gueststore.Create(db, gueststore.CreateParams{
		Name: "A", Email: "a@example.com", Token: "sametoken12345",
	})
	if err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	_, err = gueststore.Create(db, gueststore.CreateParams{
		Name: "B", Email: "b@example.com", Token: "sametoken12345",
	})
	if !errors.Is(err, gueststore.ErrDuplicateToken) {
		t.Fatalf("Expected ErrDuplicateToken, got %v", err)
	}
}

func TestGetByTokenNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := gueststore.GetByToken(db, "nosuchtoken")
	if !errors.Is(err, gueststore.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetByAccessCodeCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)
	confirmWithCode(t, db, guest, "QZT234")

	got, err := gueststore.GetByAccessCode(db, "qzt234")
	if err != nil {
		t.Fatalf("Lowercase lookup failed: %v", err)
	}
	if got.ID != guest.ID {
		t.Errorf("Expected guest %d, got %d", guest.ID, got.ID)
	}

	if _, err := gueststore.GetByAccessCode(db, "  QZT234 "); err != nil {
		t.Errorf("Whitespace-padded lookup failed: %v", err)
	}
}

func TestApplyRSVPWritesAllFieldsAtomically(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", true)

	updated, err := gueststore.ApplyRSVP(db, guest.Token, gueststore.RSVPUpdate{
		Status:                models.RSVPAttending,
		MealPreference:        strPtr("vegetarian"),
		PlusOneAttending:      true,
		PlusOneName:           strPtr("Chidi"),
		PlusOneMealPreference: strPtr("vegan"),
		Message:               strPtr("See you there!"),
		AccessCode:            strPtr("ABC234"),
	})
	if err != nil {
		t.Fatalf("ApplyRSVP failed: %v", err)
	}

	if updated.RSVPStatus != models.RSVPAttending {
		t.Errorf("Expected attending, got %q", updated.RSVPStatus)
	}
	if updated.MealPreference == nil || *updated.MealPreference != "vegetarian" {
		t.Errorf("Meal preference not persisted: %v", updated.MealPreference)
	}
	if !updated.PlusOneAttending || updated.PlusOneName == nil || *updated.PlusOneName != "Chidi" {
		t.Error("Plus one details not persisted")
	}
	if updated.AccessCode == nil || *updated.AccessCode != "ABC234" {
		t.Errorf("Access code not persisted with the same update: %v", updated.AccessCode)
	}
}

func TestApplyRSVPUnknownToken(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := gueststore.ApplyRSVP(db, "nosuchtoken", gueststore.RSVPUpdate{
		Status: models.RSVPDeclined,
	})
	if !errors.Is(err, gueststore.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	_, err = gueststore.ApplyRSVP(db, "nosuchtoken", gueststore.RSVPUpdate{
		Status:         models.RSVPAttending,
		MealPreference: strPtr("fish"),
		AccessCode:     strPtr("XYZ789"),
	})
	if !errors.Is(err, gueststore.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for claiming update, got %v", err)
	}
}

func TestApplyRSVPAccessCodeCollision(t *testing.T) {
	db := testutil.SetupTestDB(t)

	a := testutil.CreateTestGuest(t, db, "Guest A", "a@example.com", false)
	b := testutil.CreateTestGuest(t, db, "Guest B", "b@example.com", false)

	confirmWithCode(t, db, a, "SAME42")

	// B tries to claim the code A already holds: the unique key is the
	// arbiter, not any earlier existence check.
	_, err := gueststore.ApplyRSVP(db, b.Token, gueststore.RSVPUpdate{
		Status:         models.RSVPAttending,
		MealPreference: strPtr("fish"),
		AccessCode:     strPtr("SAME42"),
	})
	if !errors.Is(err, gueststore.ErrDuplicateAccessCode) {
		t.Fatalf("Expected ErrDuplicateAccessCode, got %v", err)
	}
}

func TestApplyRSVPDoesNotOverwriteExistingCode(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)
	confirmWithCode(t, db, guest, "FIRST2")

	_, err := gueststore.ApplyRSVP(db, guest.Token, gueststore.RSVPUpdate{
		Status:         models.RSVPAttending,
		MealPreference: strPtr("beef"),
		AccessCode:     strPtr("SECND2"),
	})
	if !errors.Is(err, gueststore.ErrCodeAlreadySet) {
		t.Fatalf("Expected ErrCodeAlreadySet, got %v", err)
	}

	got, err := gueststore.GetByToken(db, guest.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccessCode == nil || *got.AccessCode != "FIRST2" {
		t.Errorf("Original access code should be untouched, got %v", got.AccessCode)
	}
}

func TestApplyCheckIn(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)
	confirmWithCode(t, db, guest, "CHK234")

	got, already, err := gueststore.ApplyCheckIn(db, "chk234")
	if err != nil {
		t.Fatalf("Check-in failed: %v", err)
	}
	if already {
		t.Error("First check-in should not report already checked in")
	}
	if !got.CheckedIn || got.CheckedInAt == nil {
		t.Fatal("Check-in did not record arrival")
	}
	firstCheckedInAt := *got.CheckedInAt

	// Second attempt is the idempotent no-op.
	got2, already, err := gueststore.ApplyCheckIn(db, "CHK234")
	if err != nil {
		t.Fatalf("Second check-in errored: %v", err)
	}
	if !already {
		t.Error("Second check-in should report already checked in")
	}
	if got2.CheckedInAt == nil || !got2.CheckedInAt.Equal(firstCheckedInAt) {
		t.Errorf("checked_in_at changed on repeat check-in: %v vs %v", got2.CheckedInAt, firstCheckedInAt)
	}
}

func TestApplyCheckInNotEligible(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)
	confirmWithCode(t, db, guest, "DCL234")

	// Attended, then changed their mind. The code survives but can no
	// longer be used at the desk.
	if _, err := gueststore.ApplyRSVP(db, guest.Token, gueststore.RSVPUpdate{
		Status: models.RSVPDeclined,
	}); err != nil {
		t.Fatalf("Decline failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, _, err := gueststore.ApplyCheckIn(db, "DCL234")
		if !errors.Is(err, gueststore.ErrNotEligible) {
			t.Fatalf("Attempt %d: expected ErrNotEligible, got %v", i+1, err)
		}
	}

	got, err := gueststore.GetByToken(db, guest.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got.CheckedIn {
		t.Error("Declined guest must not end up checked in")
	}
	if got.AccessCode == nil || *got.AccessCode != "DCL234" {
		t.Error("Declining should preserve the issued access code")
	}
}

func TestApplyCheckInInvalidCode(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, _, err := gueststore.ApplyCheckIn(db, "ZZZZZZ")
	if !errors.Is(err, gueststore.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	db := testutil.SetupTestDB(t)

	a := testutil.CreateTestGuest(t, db, "A", "a@example.com", true)
	b := testutil.CreateTestGuest(t, db, "B", "b@example.com", false)
	testutil.CreateTestGuest(t, db, "C", "c@example.com", false)

	if _, err := gueststore.ApplyRSVP(db, a.Token, gueststore.RSVPUpdate{
		Status:                models.RSVPAttending,
		MealPreference:        strPtr("vegetarian"),
		PlusOneAttending:      true,
		PlusOneName:           strPtr("Chidi"),
		PlusOneMealPreference: strPtr("vegan"),
		AccessCode:            strPtr("STA234"),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := gueststore.ApplyRSVP(db, b.Token, gueststore.RSVPUpdate{
		Status: models.RSVPDeclined,
	}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := gueststore.ApplyCheckIn(db, "STA234"); err != nil {
		t.Fatal(err)
	}

	stats, err := gueststore.Stats(db)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalGuests != 3 {
		t.Errorf("total: expected 3, got %d", stats.TotalGuests)
	}
	if stats.Attending != 1 {
		t.Errorf("attending: expected 1, got %d", stats.Attending)
	}
	if stats.Declined != 1 {
		t.Errorf("declined: expected 1, got %d", stats.Declined)
	}
	if stats.Pending != 1 {
		t.Errorf("pending: expected 1, got %d", stats.Pending)
	}
	if stats.PlusOnes != 1 {
		t.Errorf("plus ones: expected 1, got %d", stats.PlusOnes)
	}
	if stats.CheckedIn != 1 {
		t.Errorf("checked in: expected 1, got %d", stats.CheckedIn)
	}
}

func TestDeleteGuest(t *testing.T) {
	db := testutil.SetupTestDB(t)

	guest := testutil.CreateTestGuest(t, db, "Amara Obi", "amara@example.com", false)

	if err := gueststore.Delete(db, guest.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := gueststore.GetByToken(db, guest.Token); !errors.Is(err, gueststore.ErrNotFound) {
		t.Fatalf("Expected guest to be gone, got %v", err)
	}

	if err := gueststore.Delete(db, guest.ID); !errors.Is(err, gueststore.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.CreateTestGuest(t, db, "First", "first@example.com", false)
	testutil.CreateTestGuest(t, db, "Second", "second@example.com", false)
	testutil.CreateTestGuest(t, db, "Third", "third@example.com", false)

	guests, err := gueststore.List(db)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(guests) != 3 {
		t.Fatalf("Expected 3 guests, got %d", len(guests))
	}
	if guests[0].Name != "Third" || guests[2].Name != "First" {
		t.Errorf("Expected newest first, got %s ... %s", guests[0].Name, guests[2].Name)
	}
}
