package utils

import (
	"fmt"
	"os"
)

func SendRSVPReminderEmail(to, guestName, inviteURL string) error {
	weddingDate := os.Getenv("WEDDING_DATE")
	coupleNames := os.Getenv("COUPLE_NAMES")

	subject := fmt.Sprintf("⏰ %s, we're still waiting on your RSVP", guestName)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8" />
	<style>
		body { font-family: Georgia, 'Times New Roman', serif; background-color: #faf7f2; margin: 0; padding: 0; color: #3d3d3d; }
		.container { max-width: 480px; margin: 25px auto; background: #ffffff; border-radius: 12px; border-top: 5px solid #9b7b5b; overflow: hidden; }
		.content { padding: 22px 20px; font-size: 14px; line-height: 1.6; }
		.btn { display: inline-block; background-color: #9b7b5b; color: #ffffff !important; text-decoration: none; font-size: 14px; font-weight: 600; padding: 11px 24px; border-radius: 6px; margin: 16px 0; }
		.footer { background: #f5f0e8; text-align: center; padding: 14px; font-size: 12px; color: #8a8a8a; }
	</style>
	</head>
	<body>
		<div class="container">
			<div class="content">
				<p>Dear %s,</p>
				<p>Just a gentle nudge — we haven't heard back about our wedding on <b>%s</b> and we'd love to know if you can join us.</p>
				<div style="text-align: center;">
					<a href="%s" class="btn">RSVP Now</a>
				</div>
				<p>It only takes a minute, and it helps us enormously with seating and catering.</p>
			</div>
			<div class="footer">
				With love, %s
			</div>
		</div>
	</body>
	</html>
	`, guestName, weddingDate, inviteURL, coupleNames)

	return SendEmail(to, subject, body)
}
