package service

import (
	"context"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type taskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	agentRepo repository.AgentRepository
	orgRepo   repository.OrganisationRepository
	activity  ActivityService
	notify    NotificationService
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	agentRepo repository.AgentRepository,
	orgRepo repository.OrganisationRepository,
	activity ActivityService,
	notify NotificationService,
) TaskService {
	return &taskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		agentRepo: agentRepo,
		orgRepo:   orgRepo,
		activity:  activity,
		notify:    notify,
	}
}

func (s *taskService) Create(ctx context.Context, scope authz.Scope, task *domain.Task) (*domain.Task, error) {
	if !scope.IsAdmin() {
		task.OrganisationID = scope.OrgID
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateAssignee(ctx, scope, task); err != nil {
		return nil, err
	}

	assignedBy := scope.UserID
	task.AssignedBy = &assignedBy
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Side effects run only after the row is committed.
	s.notify.NotifyTaskAssigned(ctx, scope.UserID, task, 0)
	orgID := task.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          domain.ActionTaskCreated,
		ObjectType:      "task",
		ObjectID:        &task.ID,
		ObjectRepr:      task.Title,
		OrganisationID:  &orgID,
		AffectedAgentID: s.agentIDForUser(ctx, task.AssignedTo),
	})
	return task, nil
}

// validateAssignee enforces the dependent-selection contract: the assignee
// must be the organisation's organisor or one of its agents, never an
// admin, and admin callers may not assign to themselves. Submitting an id
// outside the set is a validation error, not a silent correction.
func (s *taskService) validateAssignee(ctx context.Context, scope authz.Scope, task *domain.Task) error {
	if scope.IsAgent() && task.AssignedTo != scope.UserID {
		return domain.NewValidationError("assigned_to", "agents may only keep tasks assigned to themselves")
	}

	assignee, err := s.userRepo.GetByID(ctx, task.AssignedTo)
	if err != nil {
		return domain.NewValidationError("assigned_to", "assignee not found")
	}
	if assignee.Role == domain.RoleAdmin {
		return domain.NewValidationError("assigned_to", "cannot assign tasks to admins")
	}
	if scope.IsAdmin() && assignee.ID == scope.UserID {
		return domain.NewValidationError("assigned_to", "cannot assign to yourself")
	}

	switch assignee.Role {
	case domain.RoleOrganisor:
		org, err := s.orgRepo.GetByOwner(ctx, assignee.ID)
		if err != nil || org.ID != task.OrganisationID {
			return domain.NewValidationError("assigned_to", "assignee does not belong to the selected organisation")
		}
	case domain.RoleAgent:
		agent, err := s.agentRepo.GetByUserID(ctx, assignee.ID)
		if err != nil || agent.OrganisationID != task.OrganisationID {
			return domain.NewValidationError("assigned_to", "assignee does not belong to the selected organisation")
		}
	}
	return nil
}

func (s *taskService) agentIDForUser(ctx context.Context, userID int64) *int64 {
	agent, err := s.agentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return &agent.ID
}

func (s *taskService) Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, scope, id)
}

func (s *taskService) Update(ctx context.Context, scope authz.Scope, task *domain.Task) (*domain.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, scope, task.ID)
	if err != nil {
		return nil, err
	}
	task.OrganisationID = existing.OrganisationID
	task.AssignedBy = existing.AssignedBy
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateAssignee(ctx, scope, task); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, scope, task); err != nil {
		return nil, err
	}

	// Reassignment fan-out skips no-op and self-directed changes.
	s.notify.NotifyTaskAssigned(ctx, scope.UserID, task, existing.AssignedTo)

	action := domain.ActionTaskUpdated
	if existing.Status != domain.TaskStatusCompleted && task.Status == domain.TaskStatusCompleted {
		action = domain.ActionTaskCompleted
	}
	orgID := task.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          action,
		ObjectType:      "task",
		ObjectID:        &task.ID,
		ObjectRepr:      task.Title,
		OrganisationID:  &orgID,
		AffectedAgentID: s.agentIDForUser(ctx, task.AssignedTo),
	})
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	task, err := s.taskRepo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	if err := s.taskRepo.Delete(ctx, scope, id); err != nil {
		return err
	}

	orgID := task.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:          domain.ActionTaskDeleted,
		ObjectType:      "task",
		ObjectID:        &task.ID,
		ObjectRepr:      task.Title,
		OrganisationID:  &orgID,
		AffectedAgentID: s.agentIDForUser(ctx, task.AssignedTo),
	})
	return nil
}

func (s *taskService) List(ctx context.Context, scope authz.Scope, filter authz.Filter, status domain.TaskStatus, page, pageSize int) ([]domain.Task, int64, error) {
	filter = authz.Normalize(scope, filter, func(agentID int64) (int64, error) {
		return s.agentRepo.OrganisationOf(ctx, agentID)
	})
	limit, offset := pageWindow(page, pageSize)
	return s.taskRepo.List(ctx, scope, filter, status, limit, offset)
}
