package entity

import (
	"context"
	"time"
)

// Salesperson is owned by the user service; this core only reads it to
// decide assignments and to deliver notifications.
type Salesperson struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SalespersonRepositoryInterface interface {
	// ListActive returns the active roster ordered by creation time
	// ascending (oldest first); assignment ties resolve on that order.
	ListActive(ctx context.Context, companyID string) ([]Salesperson, error)

	FindByID(ctx context.Context, id string) (*Salesperson, error)
}
