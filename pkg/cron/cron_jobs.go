package cron

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"wedding_rsvp/internal/repositories/gueststore"
	"wedding_rsvp/pkg/utils"

	"github.com/robfig/cron/v3"
)

func StartCronJob(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at 10:00: nudge guests who have not responded yet
	_, err := c.AddFunc("0 10 * * *", func() {
		if err := SendRSVPReminders(db); err != nil {
			utils.Logger.Errorf("Cron job failed to send RSVP reminders: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule RSVP reminder job: %v", err)
	}

	// Runs Mondays at 09:00: RSVP summary to the admin inbox
	_, err = c.AddFunc("0 9 * * 1", func() {
		if err := SendWeeklySummary(db); err != nil {
			utils.Logger.Errorf("Cron job failed to send weekly summary: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule weekly summary job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (RSVP reminders daily at 10:00, summary Mondays at 09:00)")
	return c
}

// -------------------------------------------------------------
// Remind every still-pending guest to respond (concurrent sends)
// -------------------------------------------------------------
func SendRSVPReminders(db *sql.DB) error {
	if !utils.EmailConfigured() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT name, email, token
		FROM guests
		WHERE rsvp_status = 'pending'
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var wg sync.WaitGroup
	errChan := make(chan error, 10)
	sent := 0

	for rows.Next() {
		var name, email, token string
		if err := rows.Scan(&name, &email, &token); err != nil {
			utils.Logger.Errorf("Failed to scan pending guest row: %v", err)
			continue
		}

		sent++
		wg.Add(1)
		go func(name, email, token string) {
			defer wg.Done()

			if err := utils.SendRSVPReminderEmail(email, name, utils.InviteURL(token)); err != nil {
				errChan <- fmt.Errorf("failed to send RSVP reminder to %s: %v", email, err)
				return
			}

			utils.Logger.Infof("📧 Sent RSVP reminder to %s (%s)", name, email)
		}(name, email, token)
	}

	wg.Wait()
	close(errChan)

	for e := range errChan {
		utils.Logger.Error(e)
	}

	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("Error iterating pending guest rows: %v", err)
		return err
	}

	if sent > 0 {
		utils.Logger.Infof("✅ Finished sending %d RSVP reminder emails.", sent)
	}
	return nil
}

// -------------------------------------------------------------
// Weekly guest list summary for the couple
// -------------------------------------------------------------
func SendWeeklySummary(db *sql.DB) error {
	if !utils.EmailConfigured() {
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return nil
	}

	stats, err := gueststore.Stats(db)
	if err != nil {
		return err
	}

	if err := utils.SendRSVPSummaryEmail(adminEmail, stats); err != nil {
		return err
	}

	utils.Logger.Infof("📧 Sent weekly RSVP summary to %s", adminEmail)
	return nil
}
