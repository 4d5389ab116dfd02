package repo

import (
	"context"
	"errors"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

type InvoiceRepository struct {
	backend store.Backend
	ids     *IDGenerator
}

type InvoiceFilters struct {
	Status   string
	ClientID int64
}

func NewInvoiceRepository(backend store.Backend, ids *IDGenerator) *InvoiceRepository {
	return &InvoiceRepository{backend: backend, ids: ids}
}

func (repo *InvoiceRepository) GetAll(ctx context.Context, filters InvoiceFilters) ([]models.Invoice, error) {
	var records []store.Record
	var err error

	// Narrow through a secondary index when one applies; every predicate is
	// still re-applied in memory so both backends answer identically.
	switch {
	case filters.Status != "":
		records, err = repo.backend.GetBy(ctx, store.CollectionInvoices, "status", filters.Status)
	case filters.ClientID != 0:
		records, err = repo.backend.GetBy(ctx, store.CollectionInvoices, "clientId", formatID(filters.ClientID))
	default:
		records, err = repo.backend.GetAll(ctx, store.CollectionInvoices)
	}
	if err != nil {
		return nil, err
	}

	invoices, err := decodeRecords[models.Invoice](records)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if filters.Status != "" && invoice.Status != filters.Status {
			continue
		}
		if filters.ClientID != 0 && invoice.ClientID != filters.ClientID {
			continue
		}
		matched = append(matched, invoice)
	}
	return matched, nil
}

func (repo *InvoiceRepository) GetByID(ctx context.Context, id int64) (models.Invoice, error) {
	record, err := repo.backend.Get(ctx, store.CollectionInvoices, formatID(id))
	if err != nil {
		return models.Invoice{}, err
	}
	return decodeRecord[models.Invoice](record)
}

// Add fills the id, invoice number, timestamps and derived money fields,
// then inserts. Fields already set on the partial record are kept.
func (repo *InvoiceRepository) Add(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	now := time.Now()
	if invoice.ID == 0 {
		invoice.ID = repo.ids.Next()
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = formatNumber(InvoiceNumberPrefix, invoice.ID)
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	if invoice.IssueDate.IsZero() {
		invoice.IssueDate = now
	}
	if invoice.DueDate.IsZero() {
		invoice.DueDate = invoice.IssueDate.AddDate(0, 0, models.DefaultDueDays)
	}
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusPending
	}
	invoice.Balance = invoice.Total - invoice.PaidAmount

	record, err := encodeRecord(invoice)
	if err != nil {
		return models.Invoice{}, err
	}
	if err := repo.backend.Add(ctx, store.CollectionInvoices, formatID(invoice.ID), record); err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

// Update replaces the stored record. A missing id is not an error; the
// returned flag reports whether anything was written.
func (repo *InvoiceRepository) Update(ctx context.Context, invoice models.Invoice) (bool, error) {
	key := formatID(invoice.ID)
	if _, err := repo.backend.Get(ctx, store.CollectionInvoices, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	record, err := encodeRecord(invoice)
	if err != nil {
		return false, err
	}
	if err := repo.backend.Put(ctx, store.CollectionInvoices, key, record); err != nil {
		return false, err
	}
	return true, nil
}
