package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/repo"
)

func (handler *Handler) ListInvoices(c *fiber.Ctx) error {
	filters := repo.InvoiceFilters{Status: c.Query("status")}
	if clientID, err := queryID(c, "clientId"); err != nil {
		return badRequest(c, "invalid clientId")
	} else {
		filters.ClientID = clientID
	}

	invoices, err := handler.repositories.Invoices.GetAll(c.Context(), filters)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(invoices)
}

func (handler *Handler) GetInvoice(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid invoice id")
	}

	invoice, err := handler.repositories.Invoices.GetByID(c.Context(), id)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(invoice)
}

func (handler *Handler) CreateInvoice(c *fiber.Ctx) error {
	invoice := models.Invoice{}
	if err := c.BodyParser(&invoice); err != nil {
		return badRequest(c, "invalid invoice payload")
	}

	created, err := handler.repositories.Invoices.Add(c.Context(), invoice)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) UpdateInvoice(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid invoice id")
	}

	invoice := models.Invoice{}
	if err := c.BodyParser(&invoice); err != nil {
		return badRequest(c, "invalid invoice payload")
	}
	invoice.ID = id

	updated, err := handler.repositories.Invoices.Update(c.Context(), invoice)
	if err != nil {
		return handler.fail(c, err)
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(invoice)
}

func paramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// queryID parses an optional numeric query parameter; absent means zero.
func queryID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
