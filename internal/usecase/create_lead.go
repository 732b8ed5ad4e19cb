package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/queue"
	"github.com/raviminds/estate-crm/internal/normalizer"
)

type CreateLeadInput struct {
	CompanyID string `json:"company_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Location  string `json:"location"`

	PropertyInterest string   `json:"property_interest"`
	Budget           string   `json:"budget"` // free text, overrides min/max when set
	BudgetMin        *float64 `json:"budget_min"`
	BudgetMax        *float64 `json:"budget_max"`

	IsBroker     bool     `json:"is_broker"`
	BrokerName   string   `json:"broker_name"`
	BrokerCutPct *float64 `json:"broker_cut_pct"`

	Source   string `json:"source"`
	Campaign string `json:"campaign"`
	Adset    string `json:"adset"`
	AdID     string `json:"ad_id"`
	Notes    string `json:"notes"`

	CreatedBy string `json:"-"`
}

type CreateLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Assigner AssignerInterface
	Producer queue.ProducerInterface
	Logger   *zap.Logger
}

func NewCreateLeadUseCase(
	leads entity.LeadRepositoryInterface,
	assigner AssignerInterface,
	producer queue.ProducerInterface,
	logger *zap.Logger,
) *CreateLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateLeadUseCase{
		Leads:    leads,
		Assigner: assigner,
		Producer: producer,
		Logger:   logger,
	}
}

// Execute ingests one manually entered lead: exactly one row is written, or
// none. Assignment failures downgrade to an unassigned lead rather than
// rejecting the entry; duplicates surface as entity.ErrDuplicateLead.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	lead := entity.NewLead(input.CompanyID, input.FirstName, normalizer.NormalizePhone(input.Phone))
	lead.LastName = input.LastName
	lead.Email = normalizer.NormalizeEmail(input.Email)
	lead.Location = input.Location
	lead.PropertyInterest = input.PropertyInterest
	lead.IsBroker = input.IsBroker
	lead.BrokerName = input.BrokerName
	lead.BrokerCutPct = input.BrokerCutPct
	lead.Source = normalizer.NormalizeSource(input.Source)
	lead.Campaign = input.Campaign
	lead.Adset = input.Adset
	lead.AdID = input.AdID
	lead.Notes = input.Notes
	lead.CreatedBy = input.CreatedBy

	if input.Budget != "" {
		lead.BudgetMin, lead.BudgetMax = normalizer.ParseBudgetRange(input.Budget)
	} else {
		lead.BudgetMin, lead.BudgetMax = input.BudgetMin, input.BudgetMax
	}

	assignee, err := uc.Assigner.Assign(ctx, input.CompanyID)
	if err != nil {
		uc.Logger.Warn("assignment failed, creating unassigned lead",
			zap.String("company_id", input.CompanyID), zap.Error(err))
	} else {
		lead.AssignedTo = assignee
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	uc.notifyAssignment(ctx, lead)
	return lead, nil
}

// notifyAssignment publishes the lead-assigned event. Best effort: the lead
// row is already committed, a broker outage must not fail the request.
func (uc *CreateLeadUseCase) notifyAssignment(ctx context.Context, lead *entity.Lead) {
	if uc.Producer == nil || lead.AssignedTo == "" {
		return
	}
	err := uc.Producer.PublishLeadAssigned(ctx, queue.LeadAssignedPayload{
		LeadID:        lead.ID,
		CompanyID:     lead.CompanyID,
		SalespersonID: lead.AssignedTo,
		FirstName:     lead.FirstName,
		LastName:      lead.LastName,
		Phone:         lead.Phone,
		Source:        lead.Source,
	})
	if err != nil {
		uc.Logger.Warn("lead assigned notification not published",
			zap.String("lead_id", lead.ID), zap.Error(err))
	}
}
