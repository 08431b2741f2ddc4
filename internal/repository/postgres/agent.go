package postgres

import (
	"context"
	"database/sql"
	"time"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type agentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) repository.AgentRepository {
	return &agentRepository{db: db}
}

const agentColumns = `a.id, a.user_id, a.organisation_id, a.created_on,
	u.email, u.username, u.first_name, u.last_name, u.role`

func scanAgent(rows interface{ Scan(...any) error }) (*domain.Agent, error) {
	a := &domain.Agent{User: &domain.User{}}
	err := rows.Scan(&a.ID, &a.UserID, &a.OrganisationID, &a.CreatedOn,
		&a.User.Email, &a.User.Username, &a.User.FirstName, &a.User.LastName, &a.User.Role)
	if err != nil {
		return nil, mapErr(err)
	}
	a.User.ID = a.UserID
	return a, nil
}

func (r *agentRepository) Create(ctx context.Context, a *domain.Agent) error {
	query := `INSERT INTO agents (user_id, organisation_id, created_on) VALUES ($1, $2, $3) RETURNING id`
	a.CreatedOn = time.Now().UTC()
	return mapErr(r.db.QueryRowContext(ctx, query, a.UserID, a.OrganisationID, a.CreatedOn).Scan(&a.ID))
}

func (r *agentRepository) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Agent, error) {
	pred := authz.AgentListScope(scope, authz.Filter{}, "a")
	query := `SELECT ` + agentColumns + ` FROM agents a JOIN users u ON a.user_id = u.id
	          WHERE a.id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	return scanAgent(r.db.QueryRowContext(ctx, query, args...))
}

func (r *agentRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents a JOIN users u ON a.user_id = u.id WHERE a.user_id = $1`
	return scanAgent(r.db.QueryRowContext(ctx, query, userID))
}

func (r *agentRepository) OrganisationOf(ctx context.Context, agentID int64) (int64, error) {
	var orgID int64
	err := r.db.QueryRowContext(ctx, `SELECT organisation_id FROM agents WHERE id = $1`, agentID).Scan(&orgID)
	if err != nil {
		return 0, mapErr(err)
	}
	return orgID, nil
}

func (r *agentRepository) List(ctx context.Context, scope authz.Scope, filter authz.Filter) ([]domain.Agent, error) {
	pred := authz.AgentListScope(scope, filter, "a")
	query := `SELECT ` + agentColumns + ` FROM agents a JOIN users u ON a.user_id = u.id
	          WHERE ` + pred.SQL(1) + ` ORDER BY u.first_name, u.last_name`
	rows, err := r.db.QueryContext(ctx, query, pred.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAgents(rows)
}

// ListAssignable returns agents eligible as task/lead assignees for an
// organisation: admin users and the acting user are always excluded.
func (r *agentRepository) ListAssignable(ctx context.Context, orgID, actingUserID int64) ([]domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents a JOIN users u ON a.user_id = u.id
	          WHERE a.organisation_id = $1 AND u.role <> $2 AND a.user_id <> $3
	          ORDER BY u.first_name, u.last_name`
	rows, err := r.db.QueryContext(ctx, query, orgID, domain.RoleAdmin, actingUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAgents(rows)
}

func collectAgents(rows *sql.Rows) ([]domain.Agent, error) {
	var agents []domain.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *a)
	}
	return agents, rows.Err()
}

func (r *agentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
