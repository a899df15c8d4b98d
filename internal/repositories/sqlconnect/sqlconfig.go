package sqlconnect

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func ConnectDb() error {
	if DB != nil {
		return nil
	}

	fmt.Println("Connecting to MariaDB...")

	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	host := os.Getenv("DB_HOST")

	connectionString := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, dbname)

	var err error
	DB, err = sql.Open("mysql", connectionString)
	if err != nil {
		return fmt.Errorf("failed to open DB connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping DB: %w", err)
	}

	fmt.Println("✅ Connected to MariaDB")
	return nil
}

// InitSchema creates the guests table if it does not exist. Safe to run
// on every startup. The unique keys on email, token and access_code are
// the arbiter for every concurrent write in the RSVP flow.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const Schema = `
CREATE TABLE IF NOT EXISTS guests (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50),
	token VARCHAR(100) NOT NULL,
	rsvp_status VARCHAR(20) NOT NULL DEFAULT 'pending',
	plus_one_allowed BOOLEAN NOT NULL DEFAULT FALSE,
	plus_one_name VARCHAR(255),
	plus_one_attending BOOLEAN NOT NULL DEFAULT FALSE,
	meal_preference VARCHAR(100),
	plus_one_meal_preference VARCHAR(100),
	message TEXT,
	access_code VARCHAR(10),
	checked_in BOOLEAN NOT NULL DEFAULT FALSE,
	checked_in_at TIMESTAMP NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uq_guests_email (email),
	UNIQUE KEY uq_guests_token (token),
	UNIQUE KEY uq_guests_access_code (access_code)
)`
