package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListSettings(c *fiber.Ctx) error {
	settings, err := handler.repositories.Settings.GetAll(c.Context())
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	value, exists, err := handler.repositories.Settings.Get(c.Context(), key)
	if err != nil {
		return handler.fail(c, err)
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "setting not set"})
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

type setSettingRequest struct {
	Value any `json:"value"`
}

func (handler *Handler) SetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	request := setSettingRequest{}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid setting payload")
	}

	if err := handler.repositories.Settings.Set(c.Context(), key, request.Value); err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "value": request.Value})
}
