package service

import (
	"context"
	"errors"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type leadService struct {
	leadRepo     repository.LeadRepository
	categoryRepo repository.CategoryRepository
	agentRepo    repository.AgentRepository
	activity     ActivityService
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	categoryRepo repository.CategoryRepository,
	agentRepo repository.AgentRepository,
	activity ActivityService,
) LeadService {
	return &leadService{
		leadRepo:     leadRepo,
		categoryRepo: categoryRepo,
		agentRepo:    agentRepo,
		activity:     activity,
	}
}

func (s *leadService) Create(ctx context.Context, scope authz.Scope, lead *domain.Lead) (*domain.Lead, error) {
	if scope.IsAgent() {
		return nil, domain.ErrNotFound
	}
	if !scope.IsAdmin() {
		lead.OrganisationID = scope.OrgID
	}
	if err := s.validateLead(ctx, scope, lead); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	orgID := lead.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          domain.ActionLeadCreated,
		ObjectType:      "lead",
		ObjectID:        &lead.ID,
		ObjectRepr:      lead.FullName(),
		OrganisationID:  &orgID,
		AffectedAgentID: lead.AgentID,
	})
	return lead, nil
}

// validateLead checks the two-stage dependent selection: the chosen agent
// must belong to the lead's organisation and must not be the acting user.
// An out-of-set agent id is a validation error, never a silent correction.
func (s *leadService) validateLead(ctx context.Context, scope authz.Scope, lead *domain.Lead) error {
	fields := map[string]string{}
	if lead.FirstName == "" {
		fields["first_name"] = "first name is required"
	}
	if lead.OrganisationID == 0 {
		fields["organisation_id"] = "organisation is required"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	if lead.AgentID != nil {
		agent, err := s.agentRepo.GetByID(ctx, scope, *lead.AgentID)
		if err != nil || agent.OrganisationID != lead.OrganisationID {
			return domain.NewValidationError("agent_id", "agent does not belong to the selected organisation")
		}
		if agent.UserID == scope.UserID {
			return domain.NewValidationError("agent_id", "cannot assign to yourself")
		}
	}
	return nil
}

func (s *leadService) Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Lead, error) {
	return s.leadRepo.GetByID(ctx, scope, id)
}

func (s *leadService) Update(ctx context.Context, scope authz.Scope, lead *domain.Lead) (*domain.Lead, error) {
	existing, err := s.leadRepo.GetByID(ctx, scope, lead.ID)
	if err != nil {
		return nil, err
	}
	lead.OrganisationID = existing.OrganisationID
	if err := s.validateLead(ctx, scope, lead); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Update(ctx, scope, lead); err != nil {
		return nil, err
	}

	action := domain.ActionLeadUpdated
	if changedAssignee(existing.AgentID, lead.AgentID) {
		action = domain.ActionLeadAssigned
	} else if existing.ConvertedDate == nil && lead.ConvertedDate != nil {
		action = domain.ActionLeadConverted
	}
	orgID := lead.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          action,
		ObjectType:      "lead",
		ObjectID:        &lead.ID,
		ObjectRepr:      lead.FullName(),
		OrganisationID:  &orgID,
		AffectedAgentID: lead.AgentID,
	})
	return lead, nil
}

func changedAssignee(before, after *int64) bool {
	switch {
	case before == nil && after == nil:
		return false
	case before == nil || after == nil:
		return true
	default:
		return *before != *after
	}
}

func (s *leadService) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	lead, err := s.leadRepo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	if err := s.leadRepo.Delete(ctx, scope, id); err != nil {
		return err
	}

	orgID := lead.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          domain.ActionLeadDeleted,
		ObjectType:      "lead",
		ObjectID:        &lead.ID,
		ObjectRepr:      lead.FullName(),
		OrganisationID:  &orgID,
		AffectedAgentID: lead.AgentID,
	})
	return nil
}

func (s *leadService) List(ctx context.Context, scope authz.Scope, filter repository.LeadFilter, page, pageSize int) ([]domain.Lead, int64, error) {
	filter.Filter = authz.Normalize(scope, filter.Filter, func(agentID int64) (int64, error) {
		return s.agentRepo.OrganisationOf(ctx, agentID)
	})
	limit, offset := pageWindow(page, pageSize)
	return s.leadRepo.List(ctx, scope, filter, limit, offset)
}

// EnsureDefaultCategories self-heals the default category sets for one
// organisation. Calling it any number of times leaves exactly one row per
// default name; custom categories are untouched.
func (s *leadService) EnsureDefaultCategories(ctx context.Context, orgID int64) error {
	for _, name := range domain.DefaultSourceCategories {
		if _, err := s.categoryRepo.GetOrCreate(ctx, domain.CategorySource, orgID, name); err != nil {
			return err
		}
	}
	for _, name := range domain.DefaultValueCategories {
		if _, err := s.categoryRepo.GetOrCreate(ctx, domain.CategoryValue, orgID, name); err != nil {
			return err
		}
	}
	return nil
}

// ListCategories bootstraps defaults for the effective organisation before
// reading, so a fresh tenant always sees the standard sets.
func (s *leadService) ListCategories(ctx context.Context, scope authz.Scope, filter authz.Filter, kind domain.CategoryKind) ([]domain.Category, error) {
	filter = authz.Normalize(scope, filter, func(agentID int64) (int64, error) {
		return s.agentRepo.OrganisationOf(ctx, agentID)
	})
	orgID := scope.OrgID
	if scope.IsAdmin() {
		orgID = filter.OrgID
	}
	if orgID != 0 {
		if err := s.EnsureDefaultCategories(ctx, orgID); err != nil {
			return nil, err
		}
	}
	return s.categoryRepo.List(ctx, scope, filter, kind)
}

func (s *leadService) UpdateCategory(ctx context.Context, scope authz.Scope, category *domain.Category) error {
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	if category.Name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	existing, err := s.categoryRepo.GetByID(ctx, scope, category.Kind, category.ID)
	if err != nil {
		return err
	}
	if err := s.EnsureDefaultCategories(ctx, existing.OrganisationID); err != nil {
		return err
	}
	err = s.categoryRepo.Update(ctx, scope, category)
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewValidationError("name", "a category with this name already exists")
	}
	return err
}
