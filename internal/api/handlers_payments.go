package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/repo"
)

func (handler *Handler) ListPayments(c *fiber.Ctx) error {
	filters := repo.PaymentFilters{}
	if invoiceID, err := queryID(c, "invoiceId"); err != nil {
		return badRequest(c, "invalid invoiceId")
	} else {
		filters.InvoiceID = invoiceID
	}

	if raw := c.Query("dateFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid dateFrom")
		}
		filters.DateFrom = &from
	}
	if raw := c.Query("dateTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid dateTo")
		}
		filters.DateTo = &to
	}

	payments, err := handler.repositories.Payments.GetAll(c.Context(), filters)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(payments)
}

type createPaymentResponse struct {
	Payment models.Payment `json:"payment"`
	// InvoiceUpdated is false when the referenced invoice does not exist;
	// the payment is stored regardless.
	InvoiceUpdated bool `json:"invoiceUpdated"`
}

func (handler *Handler) CreatePayment(c *fiber.Ctx) error {
	payment := models.Payment{}
	if err := c.BodyParser(&payment); err != nil {
		return badRequest(c, "invalid payment payload")
	}
	if payment.InvoiceID == 0 {
		return badRequest(c, "invoiceId is required")
	}

	stored, applied, err := handler.payments.RecordPayment(c.Context(), payment)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(createPaymentResponse{Payment: stored, InvoiceUpdated: applied})
}
