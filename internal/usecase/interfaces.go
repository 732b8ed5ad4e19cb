package usecase

import (
	"context"

	"github.com/raviminds/estate-crm/internal/infra/fileparse"
	"github.com/raviminds/estate-crm/internal/infra/integration/meta"
	"github.com/raviminds/estate-crm/internal/infra/mail"
)

// AssignerInterface is the assignment policy seen by the ingestion adapters.
type AssignerInterface interface {
	Assign(ctx context.Context, companyID string) (string, error)
}

// RowParser reads an uploaded file into loosely typed rows.
type RowParser interface {
	Parse(path string, kind fileparse.Kind) ([]fileparse.Row, error)
}

// FileParser is the production RowParser backed by the fileparse package.
type FileParser struct{}

func (FileParser) Parse(path string, kind fileparse.Kind) ([]fileparse.Row, error) {
	return fileparse.Parse(path, kind)
}

// AdPlatformClient fetches the full leadgen record behind a webhook ping.
type AdPlatformClient interface {
	FetchLead(ctx context.Context, leadgenID, accessToken string) (*meta.LeadData, error)
}

// MailSender delivers the bulk-import digest. Nil-safe in the use case.
type MailSender interface {
	SendImportSummary(to string, summary mail.ImportSummary) error
}
