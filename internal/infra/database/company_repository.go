package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/raviminds/estate-crm/internal/entity"
)

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByPageID resolves an ad-platform page to its owning company.
func (r *CompanyRepository) FindByPageID(ctx context.Context, pageID string) (*entity.Company, error) {
	return r.findOne(ctx, `WHERE page_id = $1`, pageID)
}

func (r *CompanyRepository) findOne(ctx context.Context, where string, arg any) (*entity.Company, error) {
	query := `SELECT id, name, COALESCE(page_id, ''), COALESCE(page_access_token, '') FROM companies ` + where
	var c entity.Company
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.PageID, &c.PageAccessToken)
	if err == sql.ErrNoRows {
		return nil, entity.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &c, nil
}
