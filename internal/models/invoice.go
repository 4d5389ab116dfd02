package models

import "time"

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// DefaultDueDays is added to the issue date when no due date is given.
const DefaultDueDays = 30

type Invoice struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	ClientID      int64     `json:"clientId,omitempty"`
	ClientName    string    `json:"clientName,omitempty"`
	ProjectID     int64     `json:"projectId,omitempty"`
	IssueDate     time.Time `json:"issueDate,omitzero"`
	DueDate       time.Time `json:"dueDate,omitzero"`
	Total         float64   `json:"total"`
	PaidAmount    float64   `json:"paidAmount"`
	Balance       float64   `json:"balance"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

// ApplyPayment folds one payment amount into the invoice. The balance is
// total minus everything paid so far and may go negative on overpayment.
func (invoice *Invoice) ApplyPayment(amount float64) {
	invoice.PaidAmount += amount
	invoice.Balance = invoice.Total - invoice.PaidAmount
	if invoice.Balance <= 0 {
		invoice.Status = InvoiceStatusPaid
	} else {
		invoice.Status = InvoiceStatusPartial
	}
}
