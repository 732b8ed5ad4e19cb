package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/fileparse"
	"github.com/raviminds/estate-crm/internal/infra/mail"
	"github.com/raviminds/estate-crm/internal/infra/queue"
	"github.com/raviminds/estate-crm/internal/normalizer"
)

// Skip/error reasons reported per row.
const (
	ReasonMissingPhone   = "Missing phone"
	ReasonDuplicatePhone = "Duplicate phone"
	ReasonUnexpected     = "Unexpected error"
)

type ImportInput struct {
	CompanyID string
	// FilePath is the uploaded temp file; the HTTP layer owns its removal.
	FilePath    string
	Filename    string
	CreatedBy   string
	NotifyEmail string // uploader digest, optional
}

type SkippedRow struct {
	Row    int           `json:"row"`
	Reason string        `json:"reason"`
	Data   fileparse.Row `json:"data"`
}

type ImportReport struct {
	Created     int          `json:"created"`
	Skipped     int          `json:"skipped"`
	Errors      int          `json:"errors"`
	Total       int          `json:"total"`
	SkippedRows []SkippedRow `json:"skippedRows"`
}

type ImportLeadsUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Companies entity.CompanyRepositoryInterface
	Audit     entity.AuditRepositoryInterface
	Assigner  AssignerInterface
	Parser    RowParser
	Producer  queue.ProducerInterface
	Mail      MailSender
	Logger    *zap.Logger
}

func NewImportLeadsUseCase(
	leads entity.LeadRepositoryInterface,
	companies entity.CompanyRepositoryInterface,
	audit entity.AuditRepositoryInterface,
	assigner AssignerInterface,
	parser RowParser,
	producer queue.ProducerInterface,
	mailSender MailSender,
	logger *zap.Logger,
) *ImportLeadsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parser == nil {
		parser = FileParser{}
	}
	return &ImportLeadsUseCase{
		Leads:     leads,
		Companies: companies,
		Audit:     audit,
		Assigner:  assigner,
		Parser:    parser,
		Producer:  producer,
		Mail:      mailSender,
		Logger:    logger,
	}
}

// Execute runs a bulk import. Whole-file failures (unknown company,
// unsupported kind, unreadable file) abort before any row; everything after
// that is isolated per row, and the report lists every skipped or failed row
// by its original number.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, input ImportInput) (*ImportReport, error) {
	company, err := uc.Companies.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	kind, err := fileparse.DetectKind(input.Filename)
	if err != nil {
		return nil, err
	}

	rows, err := uc.Parser.Parse(input.FilePath, kind)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Total: len(rows)}
	for i, row := range rows {
		uc.processRow(ctx, input, i+1, row, report)
	}

	uc.recordCompletion(ctx, input, report)
	uc.mailSummary(company, input, report)
	return report, nil
}

func (uc *ImportLeadsUseCase) processRow(ctx context.Context, input ImportInput, rowNum int, row fileparse.Row, report *ImportReport) {
	phone := normalizer.NormalizePhone(aliasLookup(row, "phone"))
	if phone == "" {
		report.Skipped++
		report.SkippedRows = append(report.SkippedRows, SkippedRow{rowNum, ReasonMissingPhone, row})
		return
	}

	lead := entity.NewLead(input.CompanyID, firstNameOr(aliasLookup(row, "firstName")), phone)
	lead.LastName = aliasLookup(row, "lastName")
	lead.Email = normalizer.NormalizeEmail(aliasLookup(row, "email"))
	lead.Location = aliasLookup(row, "location")
	lead.PropertyInterest = aliasLookup(row, "interest")
	lead.BudgetMin, lead.BudgetMax = normalizer.ParseBudgetRange(aliasLookup(row, "budget"))
	lead.IsBroker = isYes(aliasLookup(row, "broker"))
	lead.BrokerName = aliasLookup(row, "brokerName")
	lead.BrokerCutPct = parsePercent(aliasLookup(row, "brokerCut"))
	lead.Source = normalizer.NormalizeSource(aliasLookup(row, "source"))
	lead.Notes = aliasLookup(row, "notes")
	lead.CreatedBy = input.CreatedBy

	assignee, err := uc.Assigner.Assign(ctx, input.CompanyID)
	if err != nil {
		uc.Logger.Warn("assignment failed for imported row",
			zap.Int("row", rowNum), zap.Error(err))
	} else {
		lead.AssignedTo = assignee
	}

	switch err := uc.Leads.Create(ctx, lead); {
	case err == nil:
		report.Created++
		uc.notifyAssignment(ctx, lead)
	case err == entity.ErrDuplicateLead:
		report.Skipped++
		report.SkippedRows = append(report.SkippedRows, SkippedRow{rowNum, ReasonDuplicatePhone, row})
	default:
		report.Errors++
		report.SkippedRows = append(report.SkippedRows, SkippedRow{rowNum, ReasonUnexpected, row})
		uc.Logger.Error("import row failed", zap.Int("row", rowNum), zap.Error(err))
	}
}

func (uc *ImportLeadsUseCase) notifyAssignment(ctx context.Context, lead *entity.Lead) {
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

func (uc *ImportLeadsUseCase) recordCompletion(ctx context.Context, input ImportInput, report *ImportReport) {
	if uc.Audit == nil {
		return
	}
	err := uc.Audit.Record(ctx, entity.AuditRecord{
		CompanyID: input.CompanyID,
		Action:    entity.AuditImportDone,
		Details: map[string]any{
			"filename": input.Filename,
			"created":  report.Created,
			"skipped":  report.Skipped,
			"errors":   report.Errors,
			"total":    report.Total,
		},
	})
	if err != nil {
		uc.Logger.Warn("import audit record not written", zap.Error(err))
	}
}

func (uc *ImportLeadsUseCase) mailSummary(company *entity.Company, input ImportInput, report *ImportReport) {
	if uc.Mail == nil || input.NotifyEmail == "" {
		return
	}
	err := uc.Mail.SendImportSummary(input.NotifyEmail, mail.ImportSummary{
		CompanyName: company.Name,
		Created:     report.Created,
		Skipped:     report.Skipped,
		Errors:      report.Errors,
		Total:       report.Total,
	})
	if err != nil {
		uc.Logger.Warn("import summary mail not sent", zap.Error(err))
	}
}

var yesRe = regexp.MustCompile(`(?i)yes`)

func isYes(v string) bool {
	return yesRe.MatchString(v)
}

func parsePercent(v string) *float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &n
}
