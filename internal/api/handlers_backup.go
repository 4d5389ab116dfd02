package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/services"
)

func (handler *Handler) CreateBackup(c *fiber.Ctx) error {
	bundle, err := handler.backup.CreateBackup(c.Context())
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(bundle)
}

func (handler *Handler) RestoreBackup(c *fiber.Ctx) error {
	bundle := services.Bundle{}
	if err := c.BodyParser(&bundle); err != nil {
		return badRequest(c, "invalid backup bundle")
	}

	if err := handler.backup.RestoreBackup(c.Context(), &bundle); err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(fiber.Map{"restored": true, "backupId": bundle.BackupID})
}
