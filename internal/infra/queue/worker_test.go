package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/raviminds/estate-crm/internal/entity"
)

type mockSalespersonRepo struct {
	mock.Mock
}

func (m *mockSalespersonRepo) ListActive(ctx context.Context, companyID string) ([]entity.Salesperson, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Salesperson), args.Error(1)
}

func (m *mockSalespersonRepo) FindByID(ctx context.Context, id string) (*entity.Salesperson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Salesperson), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendLeadAssigned(to, salespersonName, leadName, phone string) error {
	args := m.Called(to, salespersonName, leadName, phone)
	return args.Error(0)
}

func TestWorkerProcessSendsNotification(t *testing.T) {
	ctx := context.Background()

	repo := new(mockSalespersonRepo)
	notifier := new(mockNotifier)

	repo.On("FindByID", ctx, "sp-1").Return(&entity.Salesperson{
		ID:    "sp-1",
		Name:  "Priya",
		Email: "priya@skyline.example",
	}, nil)
	notifier.On("SendLeadAssigned", "priya@skyline.example", "Priya", "Asha Patel", "9000000001").
		Return(nil)

	w := NewWorker(nil, repo, notifier, nil)

	err := w.process(ctx, LeadAssignedPayload{
		LeadID:        "lead-1",
		SalespersonID: "sp-1",
		FirstName:     "Asha",
		LastName:      "Patel",
		Phone:         "9000000001",
	})

	assert.NoError(t, err)
	notifier.AssertCalled(t, "SendLeadAssigned",
		"priya@skyline.example", "Priya", "Asha Patel", "9000000001")
}

func TestWorkerProcessSkipsSalespersonWithoutEmail(t *testing.T) {
	ctx := context.Background()

	repo := new(mockSalespersonRepo)
	notifier := new(mockNotifier)

	repo.On("FindByID", ctx, "sp-2").Return(&entity.Salesperson{ID: "sp-2", Name: "Dev"}, nil)

	w := NewWorker(nil, repo, notifier, nil)

	err := w.process(ctx, LeadAssignedPayload{SalespersonID: "sp-2", FirstName: "Asha"})

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "SendLeadAssigned")
}

func TestWorkerProcessUnknownSalesperson(t *testing.T) {
	ctx := context.Background()

	repo := new(mockSalespersonRepo)
	notifier := new(mockNotifier)

	repo.On("FindByID", ctx, "sp-missing").Return(nil, entity.ErrSalespersonNotFound)

	w := NewWorker(nil, repo, notifier, nil)

	err := w.process(ctx, LeadAssignedPayload{SalespersonID: "sp-missing"})

	assert.ErrorIs(t, err, entity.ErrSalespersonNotFound)
	notifier.AssertNotCalled(t, "SendLeadAssigned")
}
