package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mizanhq/mizan/internal/api"
	"github.com/mizanhq/mizan/internal/config"
	"github.com/mizanhq/mizan/internal/i18n"
	"github.com/mizanhq/mizan/internal/logging"
	"github.com/mizanhq/mizan/internal/repo"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logging.WithComponent("serve")
		location := cfg.Location()

		backend, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		repositories := repo.NewRepositories(backend)
		seeder := repo.NewSeeder(repositories, logging.WithComponent("seed"))
		if err := seeder.Seed(cmd.Context()); err != nil {
			return err
		}

		i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
		if err != nil {
			return err
		}

		handler := api.NewHandler(backend, cfg.SecretKey, i18nManager, cfg.DefaultLanguage, location)

		app := fiber.New(fiber.Config{
			AppName:               "Mizan",
			DisableStartupMessage: true,
		})
		app.Use(recover.New())
		app.Use(logger.New())
		api.RegisterRoutes(app, handler)

		sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()

		go func() {
			<-sigCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
			}
		}()

		log.Info().
			Str("port", cfg.Port).
			Str("backend", backend.Name()).
			Str("tz", location.String()).
			Msg("mizan listening")
		return app.Listen(":" + cfg.Port)
	},
}
