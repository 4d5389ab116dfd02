// Package repo builds the entity repositories on top of the storage backend.
// Repositories own id and number generation, default-field population on
// create, and in-memory filter application; they never reach around the
// store.Backend interface.
package repo

import "github.com/mizanhq/mizan/internal/store"

type Repositories struct {
	Users    *UserRepository
	Projects *ProjectRepository
	Items    *ItemRepository
	Invoices *InvoiceRepository
	Clients  *ClientRepository
	Payments *PaymentRepository
	Settings *SettingsRepository
}

func NewRepositories(backend store.Backend) *Repositories {
	ids := NewIDGenerator()
	return &Repositories{
		Users:    NewUserRepository(backend, ids),
		Projects: NewProjectRepository(backend, ids),
		Items:    NewItemRepository(backend, ids),
		Invoices: NewInvoiceRepository(backend, ids),
		Clients:  NewClientRepository(backend, ids),
		Payments: NewPaymentRepository(backend, ids),
		Settings: NewSettingsRepository(backend),
	}
}
