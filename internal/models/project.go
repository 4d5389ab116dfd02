package models

import "time"

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
)

type Project struct {
	ID            int64     `json:"id"`
	ProjectNumber string    `json:"projectNumber"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ClientID      int64     `json:"clientId,omitempty"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	StartDate     time.Time `json:"startDate,omitzero"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}
