package routers

import (
	"net/http"

	"wedding_rsvp/internal/api/handlers/guests"
)

func guestsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/guests", guests.GuestsHandler)
	mux.HandleFunc("/guests/{token}", guests.GuestHandler)

	return mux
}
