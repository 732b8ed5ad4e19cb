package entity

import "context"

type Company struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PageID string `json:"page_id,omitempty"`

	// PageAccessToken is the per-company Graph API credential. There is
	// no shared fallback token: an entry for a company without one fails
	// that entry only.
	PageAccessToken string `json:"-"`
}

type CompanyRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Company, error)

	// FindByPageID resolves an ad-platform page to its owning company.
	// A miss returns ErrCompanyNotFound.
	FindByPageID(ctx context.Context, pageID string) (*Company, error)
}
