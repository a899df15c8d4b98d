package routers

import (
	"net/http"

	"wedding_rsvp/internal/api/handlers/checkin"
)

func checkinRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/checkin", checkin.CheckinHandler)

	return mux
}
