package utils

import (
	"fmt"

	"wedding_rsvp/internal/models"
)

func SendRSVPSummaryEmail(to string, stats *models.GuestStats) error {
	subject := "📊 Weekly RSVP summary"

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8" />
	<style>
		body { font-family: Georgia, 'Times New Roman', serif; background-color: #faf7f2; margin: 0; padding: 0; color: #3d3d3d; }
		.container { max-width: 480px; margin: 25px auto; background: #ffffff; border-radius: 12px; border-top: 5px solid #9b7b5b; overflow: hidden; }
		.content { padding: 22px 20px; font-size: 14px; line-height: 1.6; }
		table { width: 100%%; border-collapse: collapse; margin: 12px 0; }
		td { padding: 6px 10px; border-bottom: 1px solid #eee5d8; }
		td:last-child { text-align: right; font-weight: 600; }
	</style>
	</head>
	<body>
		<div class="container">
			<div class="content">
				<p>Here's where the guest list stands this week:</p>
				<table>
					<tr><td>Invited</td><td>%d</td></tr>
					<tr><td>Attending</td><td>%d</td></tr>
					<tr><td>Declined</td><td>%d</td></tr>
					<tr><td>Still pending</td><td>%d</td></tr>
					<tr><td>Plus ones</td><td>%d</td></tr>
					<tr><td>Checked in</td><td>%d</td></tr>
				</table>
			</div>
		</div>
	</body>
	</html>
	`, stats.TotalGuests, stats.Attending, stats.Declined, stats.Pending, stats.PlusOnes, stats.CheckedIn)

	return SendEmail(to, subject, body)
}
