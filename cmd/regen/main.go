// Command regen rebuilds every student's verification code image in one
// pass, outside the HTTP server. Useful after changing the code styling or
// the deployment base URL.
package main

import (
	"context"
	"os"

	"github.com/certivo/backend/internal/bootstrap"
	"github.com/certivo/backend/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer database.Close()

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup dependencies")
		os.Exit(1)
	}

	resp, err := deps.StudentService.RegenerateAll(context.Background())
	if err != nil {
		lgr.Error().Err(err).Msg("Bulk regeneration failed")
		os.Exit(1)
	}

	lgr.Info().Int("processed", resp.Processed).Int("failed", resp.Failed).
		Msg("All verification codes regenerated")

	if resp.Failed > 0 {
		os.Exit(1)
	}
}
