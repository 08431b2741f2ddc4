package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
)

func nowPtr() *time.Time {
	now := time.Now().UTC()
	return &now
}

type leadFixture struct {
	leadRepo     *MockLeadRepo
	categoryRepo *MockCategoryRepo
	agentRepo    *MockAgentRepo
	activity     *stubActivity
	svc          LeadService
}

func newLeadFixture() *leadFixture {
	f := &leadFixture{
		leadRepo:     new(MockLeadRepo),
		categoryRepo: new(MockCategoryRepo),
		agentRepo:    new(MockAgentRepo),
		activity:     &stubActivity{},
	}
	f.svc = NewLeadService(f.leadRepo, f.categoryRepo, f.agentRepo, f.activity)
	return f
}

func TestEnsureDefaultCategories_ProvisionsBothSets(t *testing.T) {
	f := newLeadFixture()

	for _, name := range domain.DefaultSourceCategories {
		f.categoryRepo.On("GetOrCreate", mock.Anything, domain.CategorySource, int64(5), name).
			Return(&domain.Category{Name: name}, nil).Once()
	}
	for _, name := range domain.DefaultValueCategories {
		f.categoryRepo.On("GetOrCreate", mock.Anything, domain.CategoryValue, int64(5), name).
			Return(&domain.Category{Name: name}, nil).Once()
	}

	err := f.svc.EnsureDefaultCategories(context.Background(), 5)

	assert.NoError(t, err)
	f.categoryRepo.AssertExpectations(t)
}

func TestEnsureDefaultCategories_Idempotent(t *testing.T) {
	f := newLeadFixture()

	// GetOrCreate resolves races internally, so a second pass simply
	// returns the existing rows.
	f.categoryRepo.On("GetOrCreate", mock.Anything, mock.Anything, int64(5), mock.Anything).
		Return(&domain.Category{}, nil)

	assert.NoError(t, f.svc.EnsureDefaultCategories(context.Background(), 5))
	assert.NoError(t, f.svc.EnsureDefaultCategories(context.Background(), 5))

	expected := 2 * (len(domain.DefaultSourceCategories) + len(domain.DefaultValueCategories))
	f.categoryRepo.AssertNumberOfCalls(t, "GetOrCreate", expected)
}

func TestLeadCreate_AgentCannotCreate(t *testing.T) {
	f := newLeadFixture()

	_, err := f.svc.Create(context.Background(), authz.AgentScope(20, 5, 3), &domain.Lead{FirstName: "A"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.leadRepo.AssertNotCalled(t, "Create")
}

func TestLeadCreate_AssignedAgentMustBelongToOrg(t *testing.T) {
	f := newLeadFixture()
	scope := authz.Organisor(10, 5)
	agentID := int64(3)
	lead := &domain.Lead{FirstName: "Ada", AgentID: &agentID}

	f.agentRepo.On("GetByID", mock.Anything, scope, agentID).
		Return(&domain.Agent{ID: 3, UserID: 30, OrganisationID: 8}, nil)

	_, err := f.svc.Create(context.Background(), scope, lead)

	assert.True(t, domain.IsValidation(err))
	f.leadRepo.AssertNotCalled(t, "Create")
}

func TestLeadCreate_CannotAssignToSelf(t *testing.T) {
	f := newLeadFixture()
	scope := authz.Organisor(10, 5)
	agentID := int64(3)
	lead := &domain.Lead{FirstName: "Ada", AgentID: &agentID}

	f.agentRepo.On("GetByID", mock.Anything, scope, agentID).
		Return(&domain.Agent{ID: 3, UserID: 10, OrganisationID: 5}, nil)

	_, err := f.svc.Create(context.Background(), scope, lead)

	assert.True(t, domain.IsValidation(err))
}

func TestLeadUpdate_AssignmentAndConversionActions(t *testing.T) {
	scope := authz.Organisor(10, 5)
	oldAgent := int64(3)
	newAgent := int64(4)

	t.Run("ReassignmentLogsLeadAssigned", func(t *testing.T) {
		f := newLeadFixture()
		existing := &domain.Lead{ID: 7, FirstName: "Ada", OrganisationID: 5, AgentID: &oldAgent}
		updated := &domain.Lead{ID: 7, FirstName: "Ada", AgentID: &newAgent}

		f.leadRepo.On("GetByID", mock.Anything, scope, int64(7)).Return(existing, nil)
		f.agentRepo.On("GetByID", mock.Anything, scope, newAgent).
			Return(&domain.Agent{ID: 4, UserID: 40, OrganisationID: 5}, nil)
		f.leadRepo.On("Update", mock.Anything, scope, updated).Return(nil)

		_, err := f.svc.Update(context.Background(), scope, updated)

		assert.NoError(t, err)
		if assert.Len(t, f.activity.entries, 1) {
			assert.Equal(t, domain.ActionLeadAssigned, f.activity.entries[0].Action)
		}
	})

	t.Run("ConversionLogsLeadConverted", func(t *testing.T) {
		f := newLeadFixture()
		existing := &domain.Lead{ID: 7, FirstName: "Ada", OrganisationID: 5}
		converted := nowPtr()
		updated := &domain.Lead{ID: 7, FirstName: "Ada", ConvertedDate: converted}

		f.leadRepo.On("GetByID", mock.Anything, scope, int64(7)).Return(existing, nil)
		f.leadRepo.On("Update", mock.Anything, scope, updated).Return(nil)

		_, err := f.svc.Update(context.Background(), scope, updated)

		assert.NoError(t, err)
		if assert.Len(t, f.activity.entries, 1) {
			assert.Equal(t, domain.ActionLeadConverted, f.activity.entries[0].Action)
		}
	})
}

func TestUpdateCategory_DuplicateNameIsValidationError(t *testing.T) {
	f := newLeadFixture()
	scope := authz.Organisor(10, 5)
	category := &domain.Category{ID: 2, Kind: domain.CategorySource, Name: "Referral"}

	f.categoryRepo.On("GetByID", mock.Anything, scope, domain.CategorySource, int64(2)).
		Return(&domain.Category{ID: 2, Kind: domain.CategorySource, OrganisationID: 5, Name: "Other"}, nil)
	f.categoryRepo.On("GetOrCreate", mock.Anything, mock.Anything, int64(5), mock.Anything).
		Return(&domain.Category{}, nil)
	f.categoryRepo.On("Update", mock.Anything, scope, category).Return(domain.ErrDuplicate)

	err := f.svc.UpdateCategory(context.Background(), scope, category)

	assert.True(t, domain.IsValidation(err))
}
