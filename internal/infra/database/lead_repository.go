package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/raviminds/estate-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, company_id, assigned_to, first_name, last_name, phone, email, location,
	property_interest, budget_min, budget_max, currency, source, campaign, adset, ad_id,
	external_ref, is_broker, broker_name, broker_cut_pct, status, project_id, property_id,
	created_by, notes, created_at, updated_at`

// Create inserts a single row. The partial unique index
// leads_company_phone_uniq enforces (company_id, phone); the 23505 it raises
// is the only duplicate signal, there is no check-then-insert.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.CompanyID,
		nullString(lead.AssignedTo),
		lead.FirstName,
		lead.LastName,
		lead.Phone,
		lead.Email,
		lead.Location,
		lead.PropertyInterest,
		lead.BudgetMin,
		lead.BudgetMax,
		lead.Currency,
		lead.Source,
		lead.Campaign,
		lead.Adset,
		lead.AdID,
		nullString(lead.ExternalRef),
		lead.IsBroker,
		lead.BrokerName,
		lead.BrokerCutPct,
		lead.Status,
		nullString(lead.ProjectID),
		nullString(lead.PropertyID),
		nullString(lead.CreatedBy),
		lead.Notes,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateLead
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Find(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, int, error) {
	where, args := buildLeadFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM leads ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := fmt.Sprintf(
		`SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *lead)
	}
	return leads, total, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Lead, error) {
	query := `
		UPDATE leads SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, status))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

// AssignProjectProperty links a lead to a project/property and moves its
// status in one update. Empty projectID/propertyID leave the stored values
// untouched (the dropped path only changes status).
func (r *LeadRepository) AssignProjectProperty(ctx context.Context, id, projectID, propertyID, status string) (*entity.Lead, error) {
	query := `
		UPDATE leads SET
			project_id  = COALESCE(NULLIF($2, ''), project_id),
			property_id = COALESCE(NULLIF($3, ''), property_id),
			status      = $4,
			updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, projectID, propertyID, status))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) CountActiveByAssignee(ctx context.Context, companyID string) (map[string]int, error) {
	query := `
		SELECT assigned_to, COUNT(*)
		FROM leads
		WHERE company_id = $1
		  AND assigned_to IS NOT NULL
		  AND status NOT IN ($2, $3)
		GROUP BY assigned_to
	`
	rows, err := r.DB.QueryContext(ctx, query, companyID,
		entity.StatusBookingDone, entity.StatusDropped)
	if err != nil {
		return nil, fmt.Errorf("count active leads: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var assignee string
		var n int
		if err := rows.Scan(&assignee, &n); err != nil {
			return nil, fmt.Errorf("scan active count: %w", err)
		}
		counts[assignee] = n
	}
	return counts, rows.Err()
}

func (r *LeadRepository) CountByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM leads WHERE company_id = $1 GROUP BY status`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *LeadRepository) ExistsByExternalRef(ctx context.Context, companyID, externalRef string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM leads WHERE company_id = $1 AND external_ref = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, companyID, externalRef).Scan(&exists); err != nil {
		return false, fmt.Errorf("check external ref: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var assignedTo, externalRef, projectID, propertyID, createdBy sql.NullString
	var budgetMin, budgetMax, brokerCutPct sql.NullFloat64

	err := row.Scan(
		&lead.ID,
		&lead.CompanyID,
		&assignedTo,
		&lead.FirstName,
		&lead.LastName,
		&lead.Phone,
		&lead.Email,
		&lead.Location,
		&lead.PropertyInterest,
		&budgetMin,
		&budgetMax,
		&lead.Currency,
		&lead.Source,
		&lead.Campaign,
		&lead.Adset,
		&lead.AdID,
		&externalRef,
		&lead.IsBroker,
		&lead.BrokerName,
		&brokerCutPct,
		&lead.Status,
		&projectID,
		&propertyID,
		&createdBy,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan lead: %w", err)
	}

	lead.AssignedTo = assignedTo.String
	lead.ExternalRef = externalRef.String
	lead.ProjectID = projectID.String
	lead.PropertyID = propertyID.String
	lead.CreatedBy = createdBy.String
	if budgetMin.Valid {
		lead.BudgetMin = &budgetMin.Float64
	}
	if budgetMax.Valid {
		lead.BudgetMax = &budgetMax.Float64
	}
	if brokerCutPct.Valid {
		lead.BrokerCutPct = &brokerCutPct.Float64
	}
	return &lead, nil
}

func buildLeadFilter(filter entity.LeadFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CompanyID != "" {
		add("company_id = $%d", filter.CompanyID)
	}
	if filter.Status != "" {
		add("status = $%d", strings.ToLower(filter.Status))
	}
	if filter.Source != "" {
		add("source = $%d", strings.ToLower(filter.Source))
	}
	if filter.AssignedTo != "" {
		add("assigned_to = $%d", filter.AssignedTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)",
			n, n, n, n,
		))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
