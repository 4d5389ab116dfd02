package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"

	ClientTypeCompany    = "company"
	ClientTypeIndividual = "individual"
	ClientTypeGovernment = "government"
)

type Client struct {
	ID            int64     `json:"id"`
	ClientNumber  string    `json:"clientNumber"`
	Name          string    `json:"name"`
	Type          string    `json:"type,omitempty"`
	Status        string    `json:"status"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	TotalInvoices int       `json:"totalInvoices"`
	TotalPaid     float64   `json:"totalPaid"`
	TotalBalance  float64   `json:"totalBalance"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}
