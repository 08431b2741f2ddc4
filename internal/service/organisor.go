package service

import (
	"context"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type organisorService struct {
	organisorRepo repository.OrganisorRepository
	orgRepo       repository.OrganisationRepository
	userRepo      repository.UserRepository
	agentRepo     repository.AgentRepository
}

func NewOrganisorService(
	organisorRepo repository.OrganisorRepository,
	orgRepo repository.OrganisationRepository,
	userRepo repository.UserRepository,
	agentRepo repository.AgentRepository,
) OrganisorService {
	return &organisorService{
		organisorRepo: organisorRepo,
		orgRepo:       orgRepo,
		userRepo:      userRepo,
		agentRepo:     agentRepo,
	}
}

// Get enforces the self-profile rule: a non-admin caller asking for any
// organisor record but their own gets not-found, never forbidden.
func (s *organisorService) Get(ctx context.Context, scope authz.Scope, organisorID int64) (*domain.Organisor, error) {
	organisor, err := s.organisorRepo.GetByID(ctx, organisorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewOrganisor(scope, organisor.UserID) {
		return nil, domain.ErrNotFound
	}
	user, err := s.userRepo.GetByID(ctx, organisor.UserID)
	if err == nil {
		organisor.User = user
	}
	return organisor, nil
}

func (s *organisorService) Update(ctx context.Context, scope authz.Scope, organisorID int64, firstName, lastName, phone string) (*domain.Organisor, error) {
	organisor, err := s.Get(ctx, scope, organisorID)
	if err != nil {
		return nil, err
	}
	user := organisor.User
	user.FirstName = firstName
	user.LastName = lastName
	user.PhoneNumber = phone
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return organisor, nil
}

func (s *organisorService) ListOrganisations(ctx context.Context, scope authz.Scope) ([]domain.Organisation, error) {
	if scope.IsAdmin() {
		return s.orgRepo.List(ctx)
	}
	org, err := s.orgRepo.GetByID(ctx, scope.OrgID)
	if err != nil {
		return nil, err
	}
	return []domain.Organisation{*org}, nil
}

// AssignableAgents recomputes the dependent-selection set whenever the
// organisation choice changes. Non-admins can only ask about their own
// organisation; a foreign org id reads as not found.
func (s *organisorService) AssignableAgents(ctx context.Context, scope authz.Scope, orgID int64) ([]domain.Agent, error) {
	if !scope.IsAdmin() && orgID != scope.OrgID {
		return nil, domain.ErrNotFound
	}
	return s.agentRepo.ListAssignable(ctx, orgID, scope.UserID)
}
