package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrganisationRepo
type MockOrganisationRepo struct {
	mock.Mock
}

func (m *MockOrganisationRepo) Create(ctx context.Context, org *domain.Organisation) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganisationRepo) GetByID(ctx context.Context, id int64) (*domain.Organisation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organisation), args.Error(1)
}
func (m *MockOrganisationRepo) GetByOwner(ctx context.Context, ownerID int64) (*domain.Organisation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organisation), args.Error(1)
}
func (m *MockOrganisationRepo) List(ctx context.Context) ([]domain.Organisation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organisation), args.Error(1)
}

// MockAgentRepo
type MockAgentRepo struct {
	mock.Mock
}

func (m *MockAgentRepo) Create(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}
func (m *MockAgentRepo) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Agent, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Agent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) OrganisationOf(ctx context.Context, agentID int64) (int64, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAgentRepo) List(ctx context.Context, scope authz.Scope, filter authz.Filter) ([]domain.Agent, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) ListAssignable(ctx context.Context, orgID, actingUserID int64) ([]domain.Agent, error) {
	args := m.Called(ctx, orgID, actingUserID)
	return args.Get(0).([]domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeadRepo
type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}
func (m *MockLeadRepo) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadRepo) Update(ctx context.Context, scope authz.Scope, lead *domain.Lead) error {
	args := m.Called(ctx, scope, lead)
	return args.Error(0)
}
func (m *MockLeadRepo) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}
func (m *MockLeadRepo) List(ctx context.Context, scope authz.Scope, filter repository.LeadFilter, limit, offset int) ([]domain.Lead, int64, error) {
	args := m.Called(ctx, scope, filter, limit, offset)
	return args.Get(0).([]domain.Lead), args.Get(1).(int64), args.Error(2)
}
func (m *MockLeadRepo) DaysSinceLastOrder(ctx context.Context, leadID int64) (int, error) {
	args := m.Called(ctx, leadID)
	return args.Int(0), args.Error(1)
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) GetOrCreate(ctx context.Context, kind domain.CategoryKind, orgID int64, name string) (*domain.Category, error) {
	args := m.Called(ctx, kind, orgID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, scope authz.Scope, kind domain.CategoryKind, id int64) (*domain.Category, error) {
	args := m.Called(ctx, scope, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) List(ctx context.Context, scope authz.Scope, filter authz.Filter, kind domain.CategoryKind) ([]domain.Category, error) {
	args := m.Called(ctx, scope, filter, kind)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, scope authz.Scope, category *domain.Category) error {
	args := m.Called(ctx, scope, category)
	return args.Error(0)
}

// MockTaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockTaskRepo) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Task, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}
func (m *MockTaskRepo) Update(ctx context.Context, scope authz.Scope, task *domain.Task) error {
	args := m.Called(ctx, scope, task)
	return args.Error(0)
}
func (m *MockTaskRepo) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}
func (m *MockTaskRepo) List(ctx context.Context, scope authz.Scope, filter authz.Filter, status domain.TaskStatus, limit, offset int) ([]domain.Task, int64, error) {
	args := m.Called(ctx, scope, filter, status, limit, offset)
	return args.Get(0).([]domain.Task), args.Get(1).(int64), args.Error(2)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Product, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, scope authz.Scope, product *domain.Product) error {
	args := m.Called(ctx, scope, product)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.Product, int64, error) {
	args := m.Called(ctx, scope, filter, limit, offset)
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}
func (m *MockProductRepo) CreateStockAlert(ctx context.Context, alert *domain.StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}
func (m *MockProductRepo) ListStockAlerts(ctx context.Context, scope authz.Scope, unresolvedOnly bool) ([]domain.StockAlert, error) {
	args := m.Called(ctx, scope, unresolvedOnly)
	return args.Get(0).([]domain.StockAlert), args.Error(1)
}
func (m *MockProductRepo) ResolveStockAlert(ctx context.Context, scope authz.Scope, alertID int64) error {
	args := m.Called(ctx, scope, alertID)
	return args.Error(0)
}

// MockActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, entry *domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityRepo) List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.ActivityLog, int64, error) {
	args := m.Called(ctx, scope, filter, limit, offset)
	return args.Get(0).([]domain.ActivityLog), args.Get(1).(int64), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) ExistsKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationService) NotifyTaskAssigned(ctx context.Context, actorUserID int64, task *domain.Task, previousAssignee int64) {
	m.Called(ctx, actorUserID, task, previousAssignee)
}
func (m *MockNotificationService) NotifyStockAlert(ctx context.Context, product *domain.Product, alert *domain.StockAlert) {
	m.Called(ctx, product, alert)
}
func (m *MockNotificationService) List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockNotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// stubActivity keeps side-effect assertions out of tests that do not
// care about the audit trail.
type stubActivity struct {
	entries []domain.ActivityLog
}

func (s *stubActivity) Record(ctx context.Context, scope *authz.Scope, entry domain.ActivityLog) {
	s.entries = append(s.entries, entry)
}
func (s *stubActivity) List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.ActivityLog, int64, error) {
	return nil, 0, nil
}
