package models

import "time"

const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheque   = "cheque"
)

type Payment struct {
	ID            int64     `json:"id"`
	PaymentNumber string    `json:"paymentNumber"`
	InvoiceID     int64     `json:"invoiceId"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date,omitzero"`
	Method        string    `json:"method,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}
