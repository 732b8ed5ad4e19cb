package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/usecase"
)

func TestCreateLeadSuccessAssigned(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockAssigner := new(MockAssigner)
	mockQueue := new(MockQueueProducer)

	mockAssigner.On("Assign", ctx, "comp-1").Return("sp-1", nil)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockQueue.On("PublishLeadAssigned", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockAssigner, mockQueue, nil)

	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		CompanyID: "comp-1",
		FirstName: "Ravi",
		LastName:  "Kumar",
		Phone:     " +91 98765 43210 ",
		Email:     "Ravi@Example.COM",
		Budget:    "50 lakh - 1 cr",
		Source:    "Facebook Lead Ads",
	})

	assert.NoError(t, err)
	assert.NotNil(t, lead)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "sp-1", lead.AssignedTo)
	assert.Equal(t, "+91 98765 43210", lead.Phone)
	assert.Equal(t, "ravi@example.com", lead.Email)
	assert.Equal(t, entity.SourceFacebook, lead.Source)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, entity.DefaultCurrency, lead.Currency)
	if assert.NotNil(t, lead.BudgetMin) && assert.NotNil(t, lead.BudgetMax) {
		assert.Equal(t, 5_000_000.0, *lead.BudgetMin)
		assert.Equal(t, 10_000_000.0, *lead.BudgetMax)
	}

	mockLeads.AssertCalled(t, "Create", ctx, mock.Anything)
	mockQueue.AssertCalled(t, "PublishLeadAssigned", ctx, mock.Anything)
}

func TestCreateLeadValidationFailure(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockAssigner := new(MockAssigner)
	mockQueue := new(MockQueueProducer)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockAssigner, mockQueue, nil)

	// Phone missing
	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		CompanyID: "comp-1",
		FirstName: "Ravi",
	})

	assert.Error(t, err)
	assert.Nil(t, lead)

	var verrs usecase.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.NotEmpty(t, verrs)

	mockLeads.AssertNotCalled(t, "Create")
	mockAssigner.AssertNotCalled(t, "Assign")
}

func TestCreateLeadDuplicatePhone(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockAssigner := new(MockAssigner)
	mockQueue := new(MockQueueProducer)

	mockAssigner.On("Assign", ctx, "comp-1").Return("sp-1", nil)
	mockLeads.On("Create", ctx, mock.Anything).Return(entity.ErrDuplicateLead)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockAssigner, mockQueue, nil)

	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		CompanyID: "comp-1",
		FirstName: "Ravi",
		Phone:     "9876543210",
	})

	assert.Nil(t, lead)
	assert.ErrorIs(t, err, entity.ErrDuplicateLead)
	mockQueue.AssertNotCalled(t, "PublishLeadAssigned")
}

func TestCreateLeadAssignmentFailureStaysUnassigned(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockAssigner := new(MockAssigner)
	mockQueue := new(MockQueueProducer)

	mockAssigner.On("Assign", ctx, "comp-1").Return("", errors.New("counts unavailable"))
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockAssigner, mockQueue, nil)

	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		CompanyID: "comp-1",
		FirstName: "Ravi",
		Phone:     "9876543210",
	})

	// The lead is still created, just without an owner.
	assert.NoError(t, err)
	assert.NotNil(t, lead)
	assert.Empty(t, lead.AssignedTo)

	mockLeads.AssertCalled(t, "Create", ctx, mock.Anything)
	mockQueue.AssertNotCalled(t, "PublishLeadAssigned")
}

func TestCreateLeadExplicitBudgetBounds(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockAssigner := new(MockAssigner)

	mockAssigner.On("Assign", ctx, "comp-1").Return("", nil)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockAssigner, nil, nil)

	min, max := 2_500_000.0, 4_000_000.0
	lead, err := uc.Execute(ctx, usecase.CreateLeadInput{
		CompanyID: "comp-1",
		FirstName: "Ravi",
		Phone:     "9876543210",
		BudgetMin: &min,
		BudgetMax: &max,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, lead.BudgetMin) && assert.NotNil(t, lead.BudgetMax) {
		assert.Equal(t, min, *lead.BudgetMin)
		assert.Equal(t, max, *lead.BudgetMax)
	}
}
