package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, e *domain.ActivityLog) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}
	query := `INSERT INTO activity_logs (user_id, action, object_type, object_id, object_repr,
	          details, organisation_id, affected_agent_id, created_on)
	          VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9) RETURNING id`
	e.CreatedOn = time.Now().UTC()
	err = r.db.QueryRowContext(ctx, query, e.UserID, e.Action, e.ObjectType, e.ObjectID,
		e.ObjectRepr, details, e.OrganisationID, e.AffectedAgentID, e.CreatedOn).Scan(&e.ID)
	return mapErr(err)
}

func (r *activityRepository) List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.ActivityLog, int64, error) {
	pred := authz.ActivityScope(scope, filter, "a")
	where := pred.SQL(1)
	next := pred.NextIndex(1)

	var total int64
	countQuery := `SELECT count(*) FROM activity_logs a WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, pred.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT a.id, a.user_id, a.action, COALESCE(a.object_type, ''), a.object_id,
	          COALESCE(a.object_repr, ''), a.details, a.organisation_id, a.affected_agent_id, a.created_on
	          FROM activity_logs a WHERE `+where+
		` ORDER BY a.created_on DESC, a.id DESC LIMIT $%d OFFSET $%d`, next, next+1)
	args := append(pred.Args(), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var e domain.ActivityLog
		var details []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.ObjectType, &e.ObjectID,
			&e.ObjectRepr, &details, &e.OrganisationID, &e.AffectedAgentID, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, 0, err
			}
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
