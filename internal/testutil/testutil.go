package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"wedding_rsvp/internal/models"
	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/internal/repositories/sqlconnect"
	"wedding_rsvp/pkg/utils"
)

// TestDBURL is the connection string for the dev test database.
// Override with TEST_DB_DSN.
const TestDBURL = "root:devpassword@tcp(localhost:3306)/wedding_rsvp_test?parseTime=true"

// SetupTestDB connects to the test database, recreates the guests table
// and points the shared sqlconnect handle at it so handlers resolve the
// same connection. Tests are skipped when no database is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = TestDBURL
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("Test database unavailable, skipping: %v", err)
	}

	if _, err := db.Exec(`DROP TABLE IF EXISTS guests`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	if err := sqlconnect.InitSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	sqlconnect.DB = db
	t.Cleanup(func() {
		sqlconnect.DB = nil
		db.Close()
	})

	return db
}

// CreateTestGuest inserts a pending guest with a fresh invitation token.
func CreateTestGuest(t *testing.T, db *sql.DB, name, email string, plusOneAllowed bool) *models.Guest {
	t.Helper()

	token, err := utils.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	guest, err := gueststore.Create(db, gueststore.CreateParams{
		Name:           name,
		Email:          email,
		Token:          token,
		PlusOneAllowed: plusOneAllowed,
	})
	if err != nil {
		t.Fatalf("Failed to create test guest: %v", err)
	}

	return guest
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
