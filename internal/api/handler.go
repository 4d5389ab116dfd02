// Package api exposes the repository, reporting and backup operations as a
// JSON HTTP surface. It is the only consumer boundary of the core; nothing
// here touches the storage backend directly except through the repositories
// and services.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/i18n"
	"github.com/mizanhq/mizan/internal/logging"
	"github.com/mizanhq/mizan/internal/repo"
	"github.com/mizanhq/mizan/internal/services"
	"github.com/mizanhq/mizan/internal/store"
	"github.com/rs/zerolog"
)

type Handler struct {
	repositories *repo.Repositories
	auth         *services.AuthService
	payments     *services.PaymentService
	reports      *services.ReportService
	activity     *services.ActivityService
	backup       *services.BackupService
	log          zerolog.Logger
}

func NewHandler(backend store.Backend, secretKey string, i18nManager *i18n.Manager, language string, location *time.Location) *Handler {
	repositories := repo.NewRepositories(backend)
	language = i18nManager.NormalizeLanguage(language)

	return &Handler{
		repositories: repositories,
		auth:         services.NewAuthService(repositories.Users, secretKey),
		payments:     services.NewPaymentService(repositories.Payments, repositories.Invoices, logging.WithComponent("payments")),
		reports:      services.NewReportService(repositories.Invoices, repositories.Payments, i18nManager, language, location),
		activity:     services.NewActivityService(repositories.Invoices, repositories.Payments, repositories.Projects, i18nManager, language),
		backup:       services.NewBackupService(backend, logging.WithComponent("backup")),
		log:          logging.WithComponent("api"),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// fail maps core errors onto HTTP statuses: missing records are 404,
// duplicate keys 409, storage failures 500 with the detail kept in the log.
func (handler *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, store.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "duplicate key"})
	case errors.Is(err, services.ErrInvalidPaymentAmount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	storageErr := &store.StorageError{}
	if errors.As(err, &storageErr) {
		handler.log.Error().Err(err).Str("collection", storageErr.Collection).Msg("storage failure")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}

	handler.log.Error().Err(err).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
