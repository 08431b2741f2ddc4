package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `t.id, t.organisation_id, t.title, COALESCE(t.description, ''), t.assigned_to,
	t.assigned_by, t.status, t.priority, t.start_date, t.end_date, t.created_on, t.updated_on`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	t := &domain.Task{}
	err := row.Scan(&t.ID, &t.OrganisationID, &t.Title, &t.Description, &t.AssignedTo,
		&t.AssignedBy, &t.Status, &t.Priority, &t.StartDate, &t.EndDate, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (r *taskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (organisation_id, title, description, assigned_to, assigned_by,
	          status, priority, start_date, end_date, created_on, updated_on)
	          VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now().UTC()
	t.CreatedOn = now
	t.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, t.OrganisationID, t.Title, t.Description, t.AssignedTo,
		t.AssignedBy, t.Status, t.Priority, t.StartDate, t.EndDate, t.CreatedOn, t.UpdatedOn).Scan(&t.ID)
	return mapErr(err)
}

func (r *taskRepository) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Task, error) {
	pred := authz.TaskScope(scope, authz.Filter{}, "t")
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	return scanTask(r.db.QueryRowContext(ctx, query, args...))
}

func (r *taskRepository) Update(ctx context.Context, scope authz.Scope, t *domain.Task) error {
	pred := authz.TaskScope(scope, authz.Filter{}, "tasks")
	query := `UPDATE tasks SET title=$1, description=NULLIF($2, ''), assigned_to=$3, status=$4,
	          priority=$5, start_date=$6, end_date=$7, updated_on=$8
	          WHERE id=$9 AND ` + pred.SQL(10)
	t.UpdatedOn = time.Now().UTC()
	args := append([]any{t.Title, t.Description, t.AssignedTo, t.Status, t.Priority,
		t.StartDate, t.EndDate, t.UpdatedOn, t.ID}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *taskRepository) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	pred := authz.TaskScope(scope, authz.Filter{}, "tasks")
	query := `DELETE FROM tasks WHERE id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *taskRepository) List(ctx context.Context, scope authz.Scope, filter authz.Filter, status domain.TaskStatus, limit, offset int) ([]domain.Task, int64, error) {
	pred := authz.TaskScope(scope, filter, "t")
	if status != "" {
		pred.And("t.status = ?", string(status))
	}
	where := pred.SQL(1)
	next := pred.NextIndex(1)

	var total int64
	countQuery := `SELECT count(*) FROM tasks t WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, pred.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM tasks t WHERE `+where+
		` ORDER BY t.end_date, t.priority LIMIT $%d OFFSET $%d`, next, next+1)
	args := append(pred.Args(), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, total, rows.Err()
}
