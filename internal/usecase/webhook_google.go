package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/queue"
	"github.com/raviminds/estate-crm/internal/normalizer"
)

// GoogleLeadInput is the flat form post from the Google lead-form proxy.
type GoogleLeadInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CampaignName string `json:"campaignName"`
	SubmissionID string `json:"submissionId"`
}

type GoogleWebhookUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Companies entity.CompanyRepositoryInterface
	Assigner  AssignerInterface
	Producer  queue.ProducerInterface
	Logger    *zap.Logger
}

func NewGoogleWebhookUseCase(
	leads entity.LeadRepositoryInterface,
	companies entity.CompanyRepositoryInterface,
	assigner AssignerInterface,
	producer queue.ProducerInterface,
	logger *zap.Logger,
) *GoogleWebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleWebhookUseCase{
		Leads:     leads,
		Companies: companies,
		Assigner:  assigner,
		Producer:  producer,
		Logger:    logger,
	}
}

// ProcessSubmission ingests one direct form post. Unlike the Meta channel,
// an unknown page may surface as a client error (the proxy is not
// redelivery-sensitive); anything past company resolution is swallowed so
// the proxy still gets its acknowledgement.
func (uc *GoogleWebhookUseCase) ProcessSubmission(ctx context.Context, pageID string, input GoogleLeadInput) error {
	company, err := uc.Companies.FindByPageID(ctx, pageID)
	if err != nil {
		return err
	}

	lead := entity.NewLead(company.ID, firstNameOr(input.FirstName), normalizer.NormalizePhone(input.Phone))
	lead.LastName = input.LastName
	lead.Email = normalizer.NormalizeEmail(input.Email)
	lead.Source = entity.SourceGoogle
	lead.Campaign = input.CampaignName
	lead.ExternalRef = input.SubmissionID

	if input.SubmissionID != "" {
		exists, err := uc.Leads.ExistsByExternalRef(ctx, company.ID, input.SubmissionID)
		if err != nil {
			uc.Logger.Warn("external ref check failed, proceeding",
				zap.String("submission_id", input.SubmissionID), zap.Error(err))
		} else if exists {
			uc.Logger.Info("submission already ingested, skipping redelivery",
				zap.String("submission_id", input.SubmissionID))
			return nil
		}
	}

	assignee, err := uc.Assigner.Assign(ctx, company.ID)
	if err != nil {
		uc.Logger.Warn("assignment failed for webhook lead",
			zap.String("submission_id", input.SubmissionID), zap.Error(err))
	} else {
		lead.AssignedTo = assignee
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		// The platform still gets a success ack; the failure stays internal.
		uc.Logger.Error("google lead ingestion failed",
			zap.String("submission_id", input.SubmissionID), zap.Error(err))
		return nil
	}

	uc.notify(ctx, lead)
	return nil
}

func (uc *GoogleWebhookUseCase) notify(ctx context.Context, lead *entity.Lead) {
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
