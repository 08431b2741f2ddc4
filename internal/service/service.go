package service

import (
	"context"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type AuthService interface {
	SignupOrganisor(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, emailOrUsername, password string) (access, refresh string, user *domain.User, err error)
	RefreshToken(ctx context.Context, refresh string) (access string, err error)
	VerifyEmail(ctx context.Context, token string) error
	// ResolveScope loads the caller's operative role and tenancy
	// coordinates; it runs once per authenticated request.
	ResolveScope(ctx context.Context, userID int64) (authz.Scope, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone string) (*domain.User, error)
}

type SignupInput struct {
	Email            string
	Username         string
	Password         string
	FirstName        string
	LastName         string
	OrganisationName string
}

type OrganisorService interface {
	// Get restricts non-admin callers to their own record; anything else
	// is reported as not found.
	Get(ctx context.Context, scope authz.Scope, organisorID int64) (*domain.Organisor, error)
	Update(ctx context.Context, scope authz.Scope, organisorID int64, firstName, lastName, phone string) (*domain.Organisor, error)
	ListOrganisations(ctx context.Context, scope authz.Scope) ([]domain.Organisation, error)
	// AssignableAgents is the dependent-selection set for admin/organisor
	// forms: agents of the chosen org minus admins and the acting user.
	AssignableAgents(ctx context.Context, scope authz.Scope, orgID int64) ([]domain.Agent, error)
}

type AgentService interface {
	Create(ctx context.Context, scope authz.Scope, input CreateAgentInput) (*domain.Agent, error)
	Get(ctx context.Context, scope authz.Scope, agentID int64) (*domain.Agent, error)
	List(ctx context.Context, scope authz.Scope, filter authz.Filter) ([]domain.Agent, error)
	Delete(ctx context.Context, scope authz.Scope, agentID int64) error
}

type CreateAgentInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	// OrgID is honoured only for admin callers; organisors always create
	// agents in their own organisation.
	OrgID int64
}

type LeadService interface {
	Create(ctx context.Context, scope authz.Scope, lead *domain.Lead) (*domain.Lead, error)
	Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Lead, error)
	Update(ctx context.Context, scope authz.Scope, lead *domain.Lead) (*domain.Lead, error)
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter repository.LeadFilter, page, pageSize int) ([]domain.Lead, int64, error)
	// EnsureDefaultCategories provisions the fixed default category names
	// for an organisation. Idempotent and safe under concurrency.
	EnsureDefaultCategories(ctx context.Context, orgID int64) error
	ListCategories(ctx context.Context, scope authz.Scope, filter authz.Filter, kind domain.CategoryKind) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, scope authz.Scope, category *domain.Category) error
}

type TaskService interface {
	Create(ctx context.Context, scope authz.Scope, task *domain.Task) (*domain.Task, error)
	Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Task, error)
	Update(ctx context.Context, scope authz.Scope, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, status domain.TaskStatus, page, pageSize int) ([]domain.Task, int64, error)
}

type OrderService interface {
	Create(ctx context.Context, scope authz.Scope, order *domain.Order) (*domain.Order, error)
	Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Order, error)
	Update(ctx context.Context, scope authz.Scope, order *domain.Order) (*domain.Order, error)
	Cancel(ctx context.Context, scope authz.Scope, id int64) (*domain.Order, error)
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.Order, int64, error)
}

type ProductService interface {
	Create(ctx context.Context, scope authz.Scope, product *domain.Product) (*domain.Product, error)
	Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Product, error)
	Update(ctx context.Context, scope authz.Scope, product *domain.Product) (*domain.Product, error)
	UpdatePrice(ctx context.Context, scope authz.Scope, id, priceCents int64) (*domain.Product, error)
	UpdateStock(ctx context.Context, scope authz.Scope, id int64, quantity int) (*domain.Product, error)
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.Product, int64, error)
	ListStockAlerts(ctx context.Context, scope authz.Scope, unresolvedOnly bool) ([]domain.StockAlert, error)
	ResolveStockAlert(ctx context.Context, scope authz.Scope, alertID int64) error
}

// ActivityService is the best-effort audit side channel: Record never
// returns an error to its caller.
type ActivityService interface {
	Record(ctx context.Context, scope *authz.Scope, entry domain.ActivityLog)
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.ActivityLog, int64, error)
}

type NotificationService interface {
	// Notify creates one notification; a keyed duplicate is silently
	// treated as already delivered.
	Notify(ctx context.Context, n *domain.Notification) error
	NotifyTaskAssigned(ctx context.Context, actorUserID int64, task *domain.Task, previousAssignee int64)
	NotifyStockAlert(ctx context.Context, product *domain.Product, alert *domain.StockAlert)
	List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type EmailService interface {
	// Send delivers one plain-text message. Failures are returned to the
	// caller; fan-out decides whether they gate anything.
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}
