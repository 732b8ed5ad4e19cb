package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raviminds/estate-crm/internal/entity"
)

// AuditRepository appends to the activity trail. One row per webhook item
// outcome, status change or completed import.
type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Record(ctx context.Context, rec entity.AuditRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	query := `
		INSERT INTO activity_logs (id, company_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.DB.ExecContext(ctx, query, rec.ID, rec.CompanyID, rec.Action, details, rec.CreatedAt); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
