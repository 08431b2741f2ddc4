package postgres

import (
	"database/sql"
	"errors"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when an insert loses a
// race on a unique constraint (notification keys, (name, org) categories).
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganisationRepository
	repository.OrganisorRepository
	repository.AgentRepository
	repository.LeadRepository
	repository.CategoryRepository
	repository.TaskRepository
	repository.OrderRepository
	repository.ProductRepository
	repository.ActivityRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OrganisationRepository: NewOrganisationRepository(db),
		OrganisorRepository:    NewOrganisorRepository(db),
		AgentRepository:        NewAgentRepository(db),
		LeadRepository:         NewLeadRepository(db),
		CategoryRepository:     NewCategoryRepository(db),
		TaskRepository:         NewTaskRepository(db),
		OrderRepository:        NewOrderRepository(db),
		ProductRepository:      NewProductRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// mapErr folds driver-level errors into the domain taxonomy: missing rows
// become ErrNotFound, unique-constraint losers become ErrDuplicate.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint conflict.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
