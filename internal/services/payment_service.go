package services

import (
	"context"
	"errors"
	"sync"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
	"github.com/rs/zerolog"
)

var ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

type PaymentWriter interface {
	Add(ctx context.Context, payment models.Payment) (models.Payment, error)
}

type PaymentInvoiceStore interface {
	GetByID(ctx context.Context, id int64) (models.Invoice, error)
	Update(ctx context.Context, invoice models.Invoice) (bool, error)
}

// PaymentService records payments and keeps the referenced invoice's paid
// amount, balance and status consistent with them.
type PaymentService struct {
	payments PaymentWriter
	invoices PaymentInvoiceStore
	locks    *invoiceLockTable
	log      zerolog.Logger
}

func NewPaymentService(payments PaymentWriter, invoices PaymentInvoiceStore, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		invoices: invoices,
		locks:    newInvoiceLockTable(),
		log:      log,
	}
}

// RecordPayment stores the payment, then folds it into its invoice. The
// returned flag reports whether an invoice was actually updated; a payment
// whose invoice does not exist is kept anyway and flagged false.
func (service *PaymentService) RecordPayment(ctx context.Context, payment models.Payment) (models.Payment, bool, error) {
	if payment.Amount <= 0 {
		return models.Payment{}, false, ErrInvalidPaymentAmount
	}

	stored, err := service.payments.Add(ctx, payment)
	if err != nil {
		return models.Payment{}, false, err
	}

	applied, err := service.applyToInvoice(ctx, stored)
	if err != nil {
		return stored, false, err
	}
	return stored, applied, nil
}

// applyToInvoice is the read-modify-write over the invoice. Mutations are
// serialized per invoice id so concurrent payments against the same invoice
// cannot read the same stale balance.
func (service *PaymentService) applyToInvoice(ctx context.Context, payment models.Payment) (bool, error) {
	unlock := service.locks.lock(payment.InvoiceID)
	defer unlock()

	invoice, err := service.invoices.GetByID(ctx, payment.InvoiceID)
	if errors.Is(err, store.ErrNotFound) {
		service.log.Warn().
			Int64("invoiceId", payment.InvoiceID).
			Int64("paymentId", payment.ID).
			Msg("payment references a missing invoice, balance not updated")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	invoice.ApplyPayment(payment.Amount)

	updated, err := service.invoices.Update(ctx, invoice)
	if err != nil {
		return false, err
	}
	if !updated {
		service.log.Warn().
			Int64("invoiceId", payment.InvoiceID).
			Msg("invoice disappeared while applying payment")
		return false, nil
	}
	return true, nil
}

// invoiceLockTable hands out one mutex per invoice id. Entries are never
// removed; the set of invoices touched in one process run stays small.
type invoiceLockTable struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newInvoiceLockTable() *invoiceLockTable {
	return &invoiceLockTable{locks: make(map[int64]*sync.Mutex)}
}

func (table *invoiceLockTable) lock(invoiceID int64) func() {
	table.mu.Lock()
	entry, ok := table.locks[invoiceID]
	if !ok {
		entry = &sync.Mutex{}
		table.locks[invoiceID] = entry
	}
	table.mu.Unlock()

	entry.Lock()
	return entry.Unlock
}
