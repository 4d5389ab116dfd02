package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mizanhq/mizan/internal/cli"
	"github.com/mizanhq/mizan/internal/config"
	"github.com/mizanhq/mizan/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
		File:   cfg.LogFile,
	}); err != nil {
		log.Error().Err(err).Msg("invalid logging configuration")
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
