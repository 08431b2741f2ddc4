package service

import (
	"context"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/repository"
	"leadhub-backend/internal/urls"
)

type activityService struct {
	activityRepo repository.ActivityRepository
	agentRepo    repository.AgentRepository
}

func NewActivityService(activityRepo repository.ActivityRepository, agentRepo repository.AgentRepository) ActivityService {
	return &activityService{activityRepo: activityRepo, agentRepo: agentRepo}
}

// Record appends one audit entry. It never fails the caller: an anonymous
// actor is a no-op, and write errors are logged and swallowed. The primary
// mutation has already committed by the time Record runs.
func (s *activityService) Record(ctx context.Context, scope *authz.Scope, entry domain.ActivityLog) {
	if scope == nil || scope.UserID == 0 {
		return
	}

	userID := scope.UserID
	entry.UserID = &userID
	if entry.OrganisationID == nil && scope.OrgID != 0 {
		orgID := scope.OrgID
		entry.OrganisationID = &orgID
	}
	if len(entry.ObjectRepr) > domain.ObjectReprMaxLen {
		entry.ObjectRepr = entry.ObjectRepr[:domain.ObjectReprMaxLen]
	}

	if err := s.activityRepo.Create(ctx, &entry); err != nil {
		logger.Error("Failed to record activity",
			"action", entry.Action,
			"object_type", entry.ObjectType,
			"user_id", userID,
			"error", err)
	}
}

func (s *activityService) List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.ActivityLog, int64, error) {
	filter = authz.Normalize(scope, filter, s.agentOrgLookup(ctx))
	limit, offset := pageWindow(page, pageSize)
	entries, total, err := s.activityRepo.List(ctx, scope, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range entries {
		var objectID int64
		if entries[i].ObjectID != nil {
			objectID = *entries[i].ObjectID
		}
		entries[i].DetailURL = urls.Detail(entries[i].ObjectType, objectID)
	}
	return entries, total, nil
}

func (s *activityService) agentOrgLookup(ctx context.Context) authz.AgentLookup {
	return func(agentID int64) (int64, error) {
		return s.agentRepo.OrganisationOf(ctx, agentID)
	}
}

// pageWindow converts 1-based page parameters into a limit/offset pair,
// applying the listing defaults and cap.
func pageWindow(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}
