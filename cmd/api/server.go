package main

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"

	mw "wedding_rsvp/internal/api/middlewares"
	"wedding_rsvp/internal/api/routers"
	"wedding_rsvp/internal/repositories/sqlconnect"
	"wedding_rsvp/pkg/cron"
	"wedding_rsvp/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment as-is")
	}

	utils.InitLogger()

	if err := sqlconnect.ConnectDb(); err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if err := sqlconnect.InitSchema(sqlconnect.DB); err != nil {
		utils.Logger.Fatal("Schema initialization failed: ", err)
	}

	cronRunner := cron.StartCronJob(sqlconnect.DB)
	defer cronRunner.Stop()

	router := routers.MainRouter()
	secureMux := mw.AdminOnly(mw.SecurityHeaders(router))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
	}

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	fmt.Println("Server is running on port", port)
	if cert != "" && key != "" {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
