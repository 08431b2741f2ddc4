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

type authService struct {
	userRepo      repository.UserRepository
	orgRepo       repository.OrganisationRepository
	organisorRepo repository.OrganisorRepository
	agentRepo     repository.AgentRepository
	tokens        security.TokenManager
	email         EmailService
}

func NewAuthService(
	userRepo repository.UserRepository,
	orgRepo repository.OrganisationRepository,
	organisorRepo repository.OrganisorRepository,
	agentRepo repository.AgentRepository,
	tokens security.TokenManager,
	email EmailService,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		orgRepo:       orgRepo,
		organisorRepo: organisorRepo,
		agentRepo:     agentRepo,
		tokens:        tokens,
		email:         email,
	}
}

// SignupOrganisor creates the user, their organisation and the organisor
// association in one flow. The organisation is the tenancy root every
// later record hangs off.
func (s *authService) SignupOrganisor(ctx context.Context, input SignupInput) (*domain.User, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
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
		Role:              domain.RoleOrganisor,
		VerificationToken: uuid.NewString(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("email", "email or username already in use")
		}
		return nil, err
	}

	orgName := input.OrganisationName
	if orgName == "" {
		orgName = user.FullName()
	}
	org := &domain.Organisation{Name: orgName, OwnerID: user.ID}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	if err := s.organisorRepo.Create(ctx, &domain.Organisor{UserID: user.ID, OrganisationID: org.ID}); err != nil {
		return nil, err
	}

	// Verification mail is best-effort; the account exists either way.
	body := fmt.Sprintf("Hello %s,\n\nWelcome to LeadHub. Use this token to verify your email address:\n\n%s\n", user.FullName(), user.VerificationToken)
	if err := s.email.Send(ctx, user.Email, user.FullName(), "Verify your LeadHub account", body); err != nil {
		logger.Error("Failed to send verification email", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func validateSignup(input SignupInput) error {
	fields := map[string]string{}
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	if input.Username == "" {
		fields["username"] = "username is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *authService) Login(ctx context.Context, emailOrUsername, password string) (string, string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailOrUsername)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.userRepo.GetByUsername(ctx, emailOrUsername)
	}
	if err != nil || !security.CheckPassword(user.PasswordHash, password) {
		// Same answer for unknown user and wrong password.
		return "", "", nil, domain.ErrUnauthenticated
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, user, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", domain.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}
	return s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrNotFound
	}
	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	user.VerificationToken = ""
	return s.userRepo.Update(ctx, user)
}

// ResolveScope turns an authenticated user id into the per-request Scope
// value. The operative role comes from the user row, not the token.
func (s *authService) ResolveScope(ctx context.Context, userID int64) (authz.Scope, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return authz.Scope{}, domain.ErrUnauthenticated
	}

	switch user.Role {
	case domain.RoleAdmin:
		return authz.Admin(user.ID), nil
	case domain.RoleOrganisor:
		organisor, err := s.organisorRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return authz.Scope{}, fmt.Errorf("organisor record missing for user %d: %w", user.ID, err)
		}
		return authz.Organisor(user.ID, organisor.OrganisationID), nil
	case domain.RoleAgent:
		agent, err := s.agentRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return authz.Scope{}, fmt.Errorf("agent record missing for user %d: %w", user.ID, err)
		}
		return authz.AgentScope(user.ID, agent.OrganisationID, agent.ID), nil
	}
	return authz.Scope{}, domain.ErrUnauthenticated
}

func (s *authService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.PhoneNumber = phone
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("phone_number", "phone number already in use")
		}
		return nil, err
	}
	return user, nil
}
