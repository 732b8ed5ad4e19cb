package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/queue"
	"github.com/raviminds/estate-crm/internal/normalizer"
)

// MetaWebhookPayload is the leadgen push: entries per page, changes per
// platform lead.
type MetaWebhookPayload struct {
	Object string      `json:"object"`
	Entry  []MetaEntry `json:"entry"`
}

type MetaEntry struct {
	ID      string       `json:"id"` // page id
	Changes []MetaChange `json:"changes"`
}

type MetaChange struct {
	Field string          `json:"field"`
	Value MetaChangeValue `json:"value"`
}

type MetaChangeValue struct {
	LeadgenID string `json:"leadgen_id"`
	PageID    string `json:"page_id"`
	FormID    string `json:"form_id"`
	AdID      string `json:"ad_id"`
	AdsetID   string `json:"adgroup_id"`
}

type MetaWebhookUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Companies    entity.CompanyRepositoryInterface
	Audit        entity.AuditRepositoryInterface
	Assigner     AssignerInterface
	Platform     AdPlatformClient
	Producer     queue.ProducerInterface
	FetchTimeout time.Duration
	Logger       *zap.Logger
}

func NewMetaWebhookUseCase(
	leads entity.LeadRepositoryInterface,
	companies entity.CompanyRepositoryInterface,
	audit entity.AuditRepositoryInterface,
	assigner AssignerInterface,
	platform AdPlatformClient,
	producer queue.ProducerInterface,
	logger *zap.Logger,
) *MetaWebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWebhookUseCase{
		Leads:        leads,
		Companies:    companies,
		Audit:        audit,
		Assigner:     assigner,
		Platform:     platform,
		Producer:     producer,
		FetchTimeout: 10 * time.Second,
		Logger:       logger,
	}
}

// ProcessDelivery walks every entry and change in the push. It never fails:
// Meta redelivers on anything but success, and a redelivery storm is worse
// than a dropped lead, so each entry/change failure is logged and audited
// internally and the next one proceeds.
func (uc *MetaWebhookUseCase) ProcessDelivery(ctx context.Context, payload MetaWebhookPayload) {
	for _, entry := range payload.Entry {
		pageID := entry.ID
		if pageID == "" {
			continue
		}

		company, err := uc.Companies.FindByPageID(ctx, pageID)
		if err != nil {
			uc.Logger.Warn("no company for page, skipping entry",
				zap.String("page_id", pageID), zap.Error(err))
			continue
		}

		for _, change := range entry.Changes {
			leadgenID := change.Value.LeadgenID
			if leadgenID == "" {
				continue
			}
			uc.processChange(ctx, company, pageID, leadgenID, change.Value)
		}
	}
}

func (uc *MetaWebhookUseCase) processChange(ctx context.Context, company *entity.Company, pageID, leadgenID string, value MetaChangeValue) {
	// Advisory redelivery check; external_ref carries no constraint, a
	// delivery that races this read can still insert twice.
	exists, err := uc.Leads.ExistsByExternalRef(ctx, company.ID, leadgenID)
	if err != nil {
		uc.Logger.Warn("external ref check failed, proceeding",
			zap.String("leadgen_id", leadgenID), zap.Error(err))
	} else if exists {
		uc.Logger.Info("leadgen already ingested, skipping redelivery",
			zap.String("leadgen_id", leadgenID))
		return
	}

	if company.PageAccessToken == "" {
		uc.auditFailure(ctx, company.ID, pageID, leadgenID, "missing page access token")
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, uc.FetchTimeout)
	defer cancel()

	data, err := uc.Platform.FetchLead(fetchCtx, leadgenID, company.PageAccessToken)
	if err != nil {
		uc.auditFailure(ctx, company.ID, pageID, leadgenID, err.Error())
		return
	}
	contact := data.Contact()

	lead := entity.NewLead(company.ID, firstNameOr(contact.FirstName), normalizer.NormalizePhone(contact.Phone))
	lead.LastName = contact.LastName
	lead.Email = normalizer.NormalizeEmail(contact.Email)
	lead.Source = entity.SourceFacebook
	lead.ExternalRef = leadgenID
	lead.AdID = value.AdID
	lead.Adset = value.AdsetID

	assignee, err := uc.Assigner.Assign(ctx, company.ID)
	if err != nil {
		uc.Logger.Warn("assignment failed for webhook lead",
			zap.String("leadgen_id", leadgenID), zap.Error(err))
	} else {
		lead.AssignedTo = assignee
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		uc.auditFailure(ctx, company.ID, pageID, leadgenID, err.Error())
		return
	}

	uc.audit(ctx, entity.AuditRecord{
		CompanyID: company.ID,
		Action:    entity.AuditLeadReceived,
		Details: map[string]any{
			"pageId":    pageID,
			"leadgenId": leadgenID,
			"source":    entity.SourceFacebook,
		},
	})
	uc.notifyAssignment(ctx, lead)
}

func (uc *MetaWebhookUseCase) auditFailure(ctx context.Context, companyID, pageID, leadgenID, reason string) {
	uc.Logger.Error("meta lead ingestion failed",
		zap.String("page_id", pageID),
		zap.String("leadgen_id", leadgenID),
		zap.String("reason", reason))
	uc.audit(ctx, entity.AuditRecord{
		CompanyID: companyID,
		Action:    entity.AuditWebhookError,
		Details: map[string]any{
			"pageId":    pageID,
			"leadgenId": leadgenID,
			"error":     reason,
		},
	})
}

func (uc *MetaWebhookUseCase) audit(ctx context.Context, rec entity.AuditRecord) {
	if uc.Audit == nil {
		return
	}
	if err := uc.Audit.Record(ctx, rec); err != nil {
		uc.Logger.Warn("audit record not written", zap.Error(err))
	}
}

func (uc *MetaWebhookUseCase) notifyAssignment(ctx context.Context, lead *entity.Lead) {
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

func firstNameOr(name string) string {
	if name != "" {
		return name
	}
	return "—"
}
