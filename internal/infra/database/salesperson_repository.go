package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/raviminds/estate-crm/internal/entity"
)

// SalespersonRepository reads the sales roster owned by the user service.
// This core never writes salespersons.
type SalespersonRepository struct {
	DB *sql.DB
}

func NewSalespersonRepository(db *sql.DB) *SalespersonRepository {
	return &SalespersonRepository{DB: db}
}

// ListActive returns the company's active salespersons ordered by creation
// time ascending; the assignment policy relies on that order for ties.
func (r *SalespersonRepository) ListActive(ctx context.Context, companyID string) ([]entity.Salesperson, error) {
	query := `
		SELECT id, company_id, name, email, is_active, created_at
		FROM salespersons
		WHERE company_id = $1 AND is_active
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list salespersons: %w", err)
	}
	defer rows.Close()

	var out []entity.Salesperson
	for rows.Next() {
		var sp entity.Salesperson
		if err := rows.Scan(&sp.ID, &sp.CompanyID, &sp.Name, &sp.Email, &sp.IsActive, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan salesperson: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (r *SalespersonRepository) FindByID(ctx context.Context, id string) (*entity.Salesperson, error) {
	query := `
		SELECT id, company_id, name, email, is_active, created_at
		FROM salespersons
		WHERE id = $1
	`
	var sp entity.Salesperson
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&sp.ID, &sp.CompanyID, &sp.Name, &sp.Email, &sp.IsActive, &sp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSalespersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find salesperson: %w", err)
	}
	return &sp, nil
}
