package repo

import (
	"context"
	"errors"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

type PaymentRepository struct {
	backend store.Backend
	ids     *IDGenerator
}

type PaymentFilters struct {
	InvoiceID int64
	// DateFrom and DateTo bound the payment date, inclusive on both ends.
	DateFrom *time.Time
	DateTo   *time.Time
}

func NewPaymentRepository(backend store.Backend, ids *IDGenerator) *PaymentRepository {
	return &PaymentRepository{backend: backend, ids: ids}
}

func (repo *PaymentRepository) GetAll(ctx context.Context, filters PaymentFilters) ([]models.Payment, error) {
	var records []store.Record
	var err error

	if filters.InvoiceID != 0 {
		records, err = repo.backend.GetBy(ctx, store.CollectionPayments, "invoiceId", formatID(filters.InvoiceID))
	} else {
		records, err = repo.backend.GetAll(ctx, store.CollectionPayments)
	}
	if err != nil {
		return nil, err
	}

	payments, err := decodeRecords[models.Payment](records)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Payment, 0, len(payments))
	for _, payment := range payments {
		if filters.InvoiceID != 0 && payment.InvoiceID != filters.InvoiceID {
			continue
		}
		if filters.DateFrom != nil && payment.Date.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && payment.Date.After(*filters.DateTo) {
			continue
		}
		matched = append(matched, payment)
	}
	return matched, nil
}

func (repo *PaymentRepository) GetByID(ctx context.Context, id int64) (models.Payment, error) {
	record, err := repo.backend.Get(ctx, store.CollectionPayments, formatID(id))
	if err != nil {
		return models.Payment{}, err
	}
	return decodeRecord[models.Payment](record)
}

func (repo *PaymentRepository) Add(ctx context.Context, payment models.Payment) (models.Payment, error) {
	now := time.Now()
	if payment.ID == 0 {
		payment.ID = repo.ids.Next()
	}
	if payment.PaymentNumber == "" {
		payment.PaymentNumber = formatNumber(PaymentNumberPrefix, payment.ID)
	}
	if payment.Date.IsZero() {
		payment.Date = now
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}

	record, err := encodeRecord(payment)
	if err != nil {
		return models.Payment{}, err
	}
	if err := repo.backend.Add(ctx, store.CollectionPayments, formatID(payment.ID), record); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (repo *PaymentRepository) Update(ctx context.Context, payment models.Payment) (bool, error) {
	key := formatID(payment.ID)
	if _, err := repo.backend.Get(ctx, store.CollectionPayments, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	record, err := encodeRecord(payment)
	if err != nil {
		return false, err
	}
	if err := repo.backend.Put(ctx, store.CollectionPayments, key, record); err != nil {
		return false, err
	}
	return true, nil
}
