package entity

import (
	"context"
	"time"
)

// Audit actions emitted by the ingestion pipeline.
const (
	AuditLeadReceived = "webhook:lead_received"
	AuditWebhookError = "webhook:error"
	AuditStatusChange = "lead:status_change"
	AuditImportDone   = "import:completed"
)

// AuditRecord is one row in the activity trail. Details is free-shape and
// stored as JSON.
type AuditRecord struct {
	ID        string         `json:"id"`
	CompanyID string         `json:"company_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

type AuditRepositoryInterface interface {
	Record(ctx context.Context, rec AuditRecord) error
}
