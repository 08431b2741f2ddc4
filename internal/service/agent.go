package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/repository"
	"leadhub-backend/internal/security"
)

type agentService struct {
	agentRepo repository.AgentRepository
	userRepo  repository.UserRepository
	activity  ActivityService
	email     EmailService
}

func NewAgentService(
	agentRepo repository.AgentRepository,
	userRepo repository.UserRepository,
	activity ActivityService,
	email EmailService,
) AgentService {
	return &agentService{
		agentRepo: agentRepo,
		userRepo:  userRepo,
		activity:  activity,
		email:     email,
	}
}

// Create provisions an agent user inside an organisation. Organisors can
// only create agents in their own organisation; admins pick one.
func (s *agentService) Create(ctx context.Context, scope authz.Scope, input CreateAgentInput) (*domain.Agent, error) {
	orgID := scope.OrgID
	if scope.IsAdmin() {
		orgID = input.OrgID
	}
	if orgID == 0 {
		return nil, domain.NewValidationError("organisation_id", "organisation is required")
	}
	if scope.IsAgent() {
		return nil, domain.ErrNotFound
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:             input.Email,
		Username:          input.Username,
		PasswordHash:      hash,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Role:              domain.RoleAgent,
		VerificationToken: uuid.NewString(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("email", "email or username already in use")
		}
		return nil, err
	}

	agent := &domain.Agent{UserID: user.ID, OrganisationID: orgID}
	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}
	agent.User = user

	agentID := agent.ID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          domain.ActionAgentCreated,
		ObjectType:      "agent",
		ObjectID:        &agentID,
		ObjectRepr:      user.FullName(),
		OrganisationID:  &orgID,
		AffectedAgentID: &agentID,
	})

	body := fmt.Sprintf("Hello %s,\n\nAn account has been created for you on LeadHub. Sign in with your email and the password you were given, then verify your address with this token:\n\n%s\n", user.FullName(), user.VerificationToken)
	if err := s.email.Send(ctx, user.Email, user.FullName(), "You have been added to LeadHub", body); err != nil {
		logger.Error("Failed to send agent welcome email", "agent_id", agent.ID, "error", err)
	}

	return agent, nil
}

func (s *agentService) Get(ctx context.Context, scope authz.Scope, agentID int64) (*domain.Agent, error) {
	return s.agentRepo.GetByID(ctx, scope, agentID)
}

func (s *agentService) List(ctx context.Context, scope authz.Scope, filter authz.Filter) ([]domain.Agent, error) {
	filter = authz.Normalize(scope, filter, func(agentID int64) (int64, error) {
		return s.agentRepo.OrganisationOf(ctx, agentID)
	})
	return s.agentRepo.List(ctx, scope, filter)
}

func (s *agentService) Delete(ctx context.Context, scope authz.Scope, agentID int64) error {
	// Visibility check first, so foreign agents read as missing.
	agent, err := s.agentRepo.GetByID(ctx, scope, agentID)
	if err != nil {
		return err
	}
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	if err := s.agentRepo.Delete(ctx, agent.ID); err != nil {
		return err
	}

	orgID := agent.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          domain.ActionAgentDeleted,
		ObjectType:      "agent",
		ObjectID:        &agent.ID,
		ObjectRepr:      agent.User.FullName(),
		OrganisationID:  &orgID,
		AffectedAgentID: &agent.ID,
	})
	return nil
}
