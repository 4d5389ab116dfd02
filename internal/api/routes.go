package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the JSON API. Login and health are open; everything
// else requires a session, with write-heavy groups gated by capability tags.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	api := app.Group("/api")
	api.Post("/auth/login", handler.Login)

	authed := api.Group("", handler.RequireAuth)

	projects := authed.Group("/projects")
	projects.Get("/", handler.ListProjects)
	projects.Post("/", handler.CreateProject)
	projects.Put("/:id", handler.UpdateProject)

	clients := authed.Group("/clients", handler.RequirePermission("clients"))
	clients.Get("/", handler.ListClients)
	clients.Post("/", handler.CreateClient)
	clients.Put("/:id", handler.UpdateClient)

	items := authed.Group("/items")
	items.Get("/", handler.ListItems)
	items.Post("/", handler.CreateItem)

	invoices := authed.Group("/invoices", handler.RequirePermission("invoices"))
	invoices.Get("/", handler.ListInvoices)
	invoices.Get("/:id", handler.GetInvoice)
	invoices.Post("/", handler.CreateInvoice)
	invoices.Put("/:id", handler.UpdateInvoice)

	payments := authed.Group("/payments", handler.RequirePermission("invoices"))
	payments.Get("/", handler.ListPayments)
	payments.Post("/", handler.CreatePayment)

	authed.Get("/settings", handler.ListSettings)
	authed.Get("/settings/:key", handler.GetSetting)
	authed.Put("/settings/:key", handler.SetSetting)

	reports := authed.Group("/reports", handler.RequirePermission("reports"))
	reports.Get("/financial", handler.FinancialReport)

	authed.Get("/activity", handler.RecentActivity)

	backup := authed.Group("/backup", handler.RequirePermission("all"))
	backup.Get("/", handler.CreateBackup)
	backup.Post("/restore", handler.RestoreBackup)
}
