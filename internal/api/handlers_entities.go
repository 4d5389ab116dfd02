package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/repo"
)

func (handler *Handler) ListProjects(c *fiber.Ctx) error {
	filters := repo.ProjectFilters{Status: c.Query("status")}
	if clientID, err := queryID(c, "clientId"); err != nil {
		return badRequest(c, "invalid clientId")
	} else {
		filters.ClientID = clientID
	}

	projects, err := handler.repositories.Projects.GetAll(c.Context(), filters)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(projects)
}

func (handler *Handler) CreateProject(c *fiber.Ctx) error {
	project := models.Project{}
	if err := c.BodyParser(&project); err != nil {
		return badRequest(c, "invalid project payload")
	}

	created, err := handler.repositories.Projects.Add(c.Context(), project)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) UpdateProject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	project := models.Project{}
	if err := c.BodyParser(&project); err != nil {
		return badRequest(c, "invalid project payload")
	}
	project.ID = id

	updated, err := handler.repositories.Projects.Update(c.Context(), project)
	if err != nil {
		return handler.fail(c, err)
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(project)
}

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	filters := repo.ClientFilters{Type: c.Query("type"), Status: c.Query("status")}

	clients, err := handler.repositories.Clients.GetAll(c.Context(), filters)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(clients)
}

func (handler *Handler) CreateClient(c *fiber.Ctx) error {
	client := models.Client{}
	if err := c.BodyParser(&client); err != nil {
		return badRequest(c, "invalid client payload")
	}

	created, err := handler.repositories.Clients.Add(c.Context(), client)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) UpdateClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid client id")
	}

	client := models.Client{}
	if err := c.BodyParser(&client); err != nil {
		return badRequest(c, "invalid client payload")
	}
	client.ID = id

	updated, err := handler.repositories.Clients.Update(c.Context(), client)
	if err != nil {
		return handler.fail(c, err)
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(client)
}

func (handler *Handler) ListItems(c *fiber.Ctx) error {
	items, err := handler.repositories.Items.GetAll(c.Context())
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(items)
}

func (handler *Handler) CreateItem(c *fiber.Ctx) error {
	item := models.Item{}
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, "invalid item payload")
	}

	created, err := handler.repositories.Items.Add(c.Context(), item)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
