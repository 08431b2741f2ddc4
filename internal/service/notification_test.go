package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadhub-backend/internal/domain"
)

func newNotificationFixture() (*MockNotificationRepo, *MockOrganisationRepo, NotificationService) {
	noteRepo := new(MockNotificationRepo)
	orgRepo := new(MockOrganisationRepo)
	return noteRepo, orgRepo, NewNotificationService(noteRepo, orgRepo)
}

func TestNotify_DuplicateKeyIsNotAnError(t *testing.T) {
	noteRepo, _, svc := newNotificationFixture()
	n := &domain.Notification{UserID: 7, Title: "x", Key: domain.TaskAssignedKey(3)}

	noteRepo.On("Create", mock.Anything, n).Return(domain.ErrDuplicate)

	err := svc.Notify(context.Background(), n)
	assert.NoError(t, err)
	noteRepo.AssertExpectations(t)
}

func TestNotifyTaskAssigned(t *testing.T) {
	task := &domain.Task{
		ID:         3,
		Title:      "Call the customer",
		AssignedTo: 7,
		EndDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}

	t.Run("SkipsWhenAssigneeUnchanged", func(t *testing.T) {
		noteRepo, _, svc := newNotificationFixture()
		svc.NotifyTaskAssigned(context.Background(), 1, task, 7)
		noteRepo.AssertNotCalled(t, "Create")
	})

	t.Run("SkipsSelfAssignment", func(t *testing.T) {
		noteRepo, _, svc := newNotificationFixture()
		svc.NotifyTaskAssigned(context.Background(), 7, task, 0)
		noteRepo.AssertNotCalled(t, "Create")
	})

	t.Run("FirstAssignmentCarriesDedupKey", func(t *testing.T) {
		noteRepo, _, svc := newNotificationFixture()
		noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 7 && n.Key == domain.TaskAssignedKey(3)
		})).Return(nil)

		svc.NotifyTaskAssigned(context.Background(), 1, task, 0)
		noteRepo.AssertExpectations(t)
	})

	t.Run("ReassignmentIsUnkeyed", func(t *testing.T) {
		noteRepo, _, svc := newNotificationFixture()
		noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 7 && n.Key == ""
		})).Return(nil)

		svc.NotifyTaskAssigned(context.Background(), 1, task, 5)
		noteRepo.AssertExpectations(t)
	})
}

func TestNotifyStockAlert_GoesToOrgOwner(t *testing.T) {
	noteRepo, orgRepo, svc := newNotificationFixture()
	product := &domain.Product{ID: 4, OrganisationID: 9, Name: "Widget"}
	alert := &domain.StockAlert{ID: 1, ProductID: 4, Message: "low"}

	orgRepo.On("GetByID", mock.Anything, int64(9)).
		Return(&domain.Organisation{ID: 9, OwnerID: 77}, nil)
	noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 77 && n.Message == "low"
	})).Return(nil)

	svc.NotifyStockAlert(context.Background(), product, alert)
	noteRepo.AssertExpectations(t)
	orgRepo.AssertExpectations(t)
}

func TestUnreadCount_ZeroForAnonymous(t *testing.T) {
	noteRepo, _, svc := newNotificationFixture()

	count, err := svc.UnreadCount(context.Background(), 0)
	assert.NoError(t, err)
	assert.Zero(t, count)
	noteRepo.AssertNotCalled(t, "UnreadCount")
}

func TestMarkAsRead_ScopedToOwner(t *testing.T) {
	noteRepo, _, svc := newNotificationFixture()
	noteRepo.On("MarkAsRead", mock.Anything, int64(5), int64(7)).Return(domain.ErrNotFound)

	err := svc.MarkAsRead(context.Background(), 7, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	noteRepo.AssertExpectations(t)
}
