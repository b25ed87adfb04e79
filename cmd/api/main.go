package main

import (
	"os"

	"github.com/certivo/backend/internal/pkg/logger"
	"github.com/certivo/backend/internal/server"
)

// @title Certivo API
// @version 1.0
// @description API for issuing and verifying academic certificates

// @contact.name API Support
// @contact.email support@certivo.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
