package utils

import (
	"fmt"
	"os"
	"time"
)

func SendInviteEmail(to, guestName, inviteURL string) error {
	weddingDate := os.Getenv("WEDDING_DATE")
	weddingLocation := os.Getenv("WEDDING_LOCATION")
	coupleNames := os.Getenv("COUPLE_NAMES")

	subject := fmt.Sprintf("💌 %s, you're invited to our wedding!", guestName)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8" />
	<style>
		body { font-family: Georgia, 'Times New Roman', serif; background-color: #faf7f2; margin: 0; padding: 0; color: #3d3d3d; }
		.container { max-width: 480px; margin: 25px auto; background: #ffffff; border-radius: 12px; border-top: 5px solid #9b7b5b; overflow: hidden; }
		.header { background-color: #9b7b5b; color: #ffffff; text-align: center; padding: 20px 12px; }
		.header h1 { margin: 0; font-size: 20px; font-weight: 500; }
		.content { padding: 22px 20px; font-size: 14px; line-height: 1.6; }
		.details { background: #f8f4ee; border: 1px solid #e8ddcf; border-radius: 8px; padding: 14px 16px; margin: 16px 0; }
		.btn { display: inline-block; background-color: #9b7b5b; color: #ffffff !important; text-decoration: none; font-size: 14px; font-weight: 600; padding: 11px 24px; border-radius: 6px; margin: 16px 0; }
		.footer { background: #f5f0e8; text-align: center; padding: 14px; font-size: 12px; color: #8a8a8a; }
	</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>You're Invited!</h1>
			</div>
			<div class="content">
				<p>Dear %s,</p>
				<p>We would be honoured to have you celebrate with us as we tie the knot.</p>
				<div class="details">
					<p><b>When:</b> %s<br/><b>Where:</b> %s</p>
				</div>
				<p>Please let us know whether you can make it by responding through your personal invitation link below.</p>
				<div style="text-align: center;">
					<a href="%s" class="btn">RSVP Now</a>
				</div>
				<p>Once you confirm, you'll receive a short access code to present at the welcome desk on the day.</p>
			</div>
			<div class="footer">
				With love, %s &copy; %d
			</div>
		</div>
	</body>
	</html>
	`, guestName, weddingDate, weddingLocation, inviteURL, coupleNames, time.Now().Year())

	return SendEmail(to, subject, body)
}
