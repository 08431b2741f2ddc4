package repository

import (
	"context"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user; dependent organisor/agent/notification rows
	// and tasks assigned to the user cascade, while assigned_by,
	// affected_agent and activity-log user references are nulled.
	Delete(ctx context.Context, id int64) error
}

type OrganisationRepository interface {
	Create(ctx context.Context, org *domain.Organisation) error
	GetByID(ctx context.Context, id int64) (*domain.Organisation, error)
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Organisation, error)
	List(ctx context.Context) ([]domain.Organisation, error)
}

type OrganisorRepository interface {
	Create(ctx context.Context, o *domain.Organisor) error
	GetByID(ctx context.Context, id int64) (*domain.Organisor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Organisor, error)
	List(ctx context.Context) ([]domain.Organisor, error)
}

type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Agent, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Agent, error)
	// OrganisationOf reports which organisation an agent belongs to;
	// used to drop forged cross-tenant agent filters.
	OrganisationOf(ctx context.Context, agentID int64) (int64, error)
	List(ctx context.Context, scope authz.Scope, filter authz.Filter) ([]domain.Agent, error)
	// ListAssignable returns the agents of an organisation eligible for
	// assignment: admins and the acting user are excluded.
	ListAssignable(ctx context.Context, orgID, actingUserID int64) ([]domain.Agent, error)
	Delete(ctx context.Context, id int64) error
}

type LeadFilter struct {
	authz.Filter
	SourceCategoryID int64
	ValueCategoryID  int64
	Unassigned       bool
}

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Lead, error)
	Update(ctx context.Context, scope authz.Scope, lead *domain.Lead) error
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter LeadFilter, limit, offset int) ([]domain.Lead, int64, error)
	// DaysSinceLastOrder reports how long a lead has been quiet: days since
	// its latest non-cancelled order, or since its creation when no such
	// order exists.
	DaysSinceLastOrder(ctx context.Context, leadID int64) (int, error)
}

type CategoryRepository interface {
	// GetOrCreate is the bootstrap primitive: it returns the existing row
	// for (kind, name, organisation) or inserts it, treating a
	// unique-constraint conflict as "exists".
	GetOrCreate(ctx context.Context, kind domain.CategoryKind, orgID int64, name string) (*domain.Category, error)
	GetByID(ctx context.Context, scope authz.Scope, kind domain.CategoryKind, id int64) (*domain.Category, error)
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, kind domain.CategoryKind) ([]domain.Category, error)
	Update(ctx context.Context, scope authz.Scope, category *domain.Category) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Task, error)
	Update(ctx context.Context, scope authz.Scope, task *domain.Task) error
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, status domain.TaskStatus, limit, offset int) ([]domain.Task, int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Order, error)
	Update(ctx context.Context, scope authz.Scope, order *domain.Order) error
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.Order, int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Product, error)
	Update(ctx context.Context, scope authz.Scope, product *domain.Product) error
	Delete(ctx context.Context, scope authz.Scope, id int64) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.Product, int64, error)
	CreateStockAlert(ctx context.Context, alert *domain.StockAlert) error
	ListStockAlerts(ctx context.Context, scope authz.Scope, unresolvedOnly bool) ([]domain.StockAlert, error)
	ResolveStockAlert(ctx context.Context, scope authz.Scope, alertID int64) error
}

type ActivityRepository interface {
	// Create appends one entry. The activity log is never updated or
	// deleted by application code.
	Create(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.ActivityLog, int64, error)
}

type NotificationRepository interface {
	// Create inserts a notification. When n.Key is set and another row
	// already holds it, Create returns domain.ErrDuplicate and writes
	// nothing; the caller treats that as "already notified".
	Create(ctx context.Context, n *domain.Notification) error
	// ExistsKey reports whether a notification with the dedup key was
	// already delivered; scans use it to skip side effects on re-runs.
	ExistsKey(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}
