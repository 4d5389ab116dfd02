package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/services"
)

func (handler *Handler) FinancialReport(c *fiber.Ctx) error {
	period := services.Period(c.Query("period", string(services.PeriodMonth)))

	report, err := handler.reports.GetFinancialReport(c.Context(), period)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(report)
}

func (handler *Handler) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	activities, err := handler.activity.RecentActivity(c.Context(), limit)
	if err != nil {
		return handler.fail(c, err)
	}
	return c.JSON(activities)
}
