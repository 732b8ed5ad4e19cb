package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/fileparse"
	"github.com/raviminds/estate-crm/internal/infra/integration/meta"
	"github.com/raviminds/estate-crm/internal/infra/mail"
	"github.com/raviminds/estate-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Find(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Lead, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) AssignProjectProperty(ctx context.Context, id, projectID, propertyID, status string) (*entity.Lead, error) {
	args := m.Called(ctx, id, projectID, propertyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) CountActiveByAssignee(ctx context.Context, companyID string) (map[string]int, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockLeadRepository) ExistsByExternalRef(ctx context.Context, companyID, externalRef string) (bool, error) {
	args := m.Called(ctx, companyID, externalRef)
	return args.Bool(0), args.Error(1)
}

// MockCompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByPageID(ctx context.Context, pageID string) (*entity.Company, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

// MockAuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, rec entity.AuditRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockAssigner
type MockAssigner struct {
	mock.Mock
}

func (m *MockAssigner) Assign(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadAssigned(ctx context.Context, payload queue.LeadAssignedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockPlatformClient
type MockPlatformClient struct {
	mock.Mock
}

func (m *MockPlatformClient) FetchLead(ctx context.Context, leadgenID, accessToken string) (*meta.LeadData, error) {
	args := m.Called(ctx, leadgenID, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meta.LeadData), args.Error(1)
}

// MockRowParser
type MockRowParser struct {
	mock.Mock
}

func (m *MockRowParser) Parse(path string, kind fileparse.Kind) ([]fileparse.Row, error) {
	args := m.Called(path, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fileparse.Row), args.Error(1)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendImportSummary(to string, summary mail.ImportSummary) error {
	args := m.Called(to, summary)
	return args.Error(0)
}
