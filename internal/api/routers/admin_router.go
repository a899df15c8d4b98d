package routers

import (
	"net/http"

	"wedding_rsvp/internal/api/handlers/auth"
	"wedding_rsvp/internal/api/handlers/guests"
)

func adminRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/admin/login", auth.AdminLoginHandler)
	mux.HandleFunc("/stats", guests.StatsHandler)

	return mux
}
