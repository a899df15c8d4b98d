package routers

import (
	"net/http"
	"time"

	"wedding_rsvp/pkg/utils"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	gRouter := guestsRouter()
	mux.Handle("/guests", gRouter)
	mux.Handle("/guests/", gRouter)

	cRouter := checkinRouter()
	mux.Handle("/checkin", cRouter)

	aRouter := adminRouter()
	mux.Handle("/stats", aRouter)
	mux.Handle("/admin/", aRouter)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	return mux
}
