package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	request := loginRequest{}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid login payload")
	}
	if request.Username == "" || request.Password == "" {
		return badRequest(c, "username and password are required")
	}

	user, token, err := handler.auth.Login(c.Context(), request.Username, request.Password)
	if err != nil {
		return handler.fail(c, err)
	}

	// Never echo the stored hash back to the client.
	user.PasswordHash = ""
	return c.JSON(loginResponse{Token: token, User: user})
}
