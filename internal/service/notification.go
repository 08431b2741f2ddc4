package service

import (
	"context"
	"errors"
	"fmt"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/repository"
	"leadhub-backend/internal/urls"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	orgRepo  repository.OrganisationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository, orgRepo repository.OrganisationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo, orgRepo: orgRepo}
}

// Notify creates one notification record. When the notification carries a
// dedup key and another run already delivered it, the duplicate is dropped
// without error.
func (s *notificationService) Notify(ctx context.Context, n *domain.Notification) error {
	err := s.noteRepo.Create(ctx, n)
	if errors.Is(err, domain.ErrDuplicate) {
		logger.Debug("Notification already delivered", "key", n.Key, "user_id", n.UserID)
		return nil
	}
	return err
}

// NotifyTaskAssigned handles both first assignment and reassignment. No
// notification is created when the assignee did not change or when the
// actor assigned the task to themselves.
func (s *notificationService) NotifyTaskAssigned(ctx context.Context, actorUserID int64, task *domain.Task, previousAssignee int64) {
	if task.AssignedTo == previousAssignee || task.AssignedTo == actorUserID {
		return
	}

	taskID := task.ID
	n := &domain.Notification{
		UserID:      task.AssignedTo,
		TaskID:      &taskID,
		Title:       "New task assigned",
		Message:     fmt.Sprintf("You have been assigned the task %q, due %s.", task.Title, task.EndDate.Format("2006-01-02")),
		ActionURL:   urls.Detail("task", task.ID),
		ActionLabel: "View task",
	}
	if previousAssignee == 0 {
		n.Key = domain.TaskAssignedKey(task.ID)
	}
	if err := s.Notify(ctx, n); err != nil {
		logger.Error("Failed to create task assignment notification",
			"task_id", task.ID, "assignee", task.AssignedTo, "error", err)
	}
}

// NotifyStockAlert notifies the organisation's owner about a freshly
// created stock alert. One alert row yields exactly one notification;
// later saves of the alert (resolution included) create nothing.
func (s *notificationService) NotifyStockAlert(ctx context.Context, product *domain.Product, alert *domain.StockAlert) {
	org, err := s.orgRepo.GetByID(ctx, product.OrganisationID)
	if err != nil {
		logger.Error("Failed to resolve organisation for stock alert",
			"product_id", product.ID, "organisation_id", product.OrganisationID, "error", err)
		return
	}

	n := &domain.Notification{
		UserID:      org.OwnerID,
		Title:       "Stock alert: " + product.Name,
		Message:     alert.Message,
		ActionURL:   urls.Detail("product", product.ID),
		ActionLabel: "View product",
	}
	if err := s.Notify(ctx, n); err != nil {
		logger.Error("Failed to create stock alert notification",
			"product_id", product.ID, "alert_id", alert.ID, "error", err)
	}
}

func (s *notificationService) List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error) {
	limit, offset := pageWindow(page, pageSize)
	return s.noteRepo.List(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.noteRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	return s.noteRepo.UnreadCount(ctx, userID)
}
