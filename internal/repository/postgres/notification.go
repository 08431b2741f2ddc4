package postgres

import (
	"context"
	"database/sql"
	"time"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a notification. A keyed insert that conflicts on the
// unique key index returns domain.ErrDuplicate; concurrent scheduler runs
// racing on the same logical event converge on one row.
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, task_id, title, message, is_read, key, action_url, action_label, created_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9) RETURNING id`
	n.CreatedOn = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.TaskID, n.Title, n.Message,
		n.IsRead, n.Key, n.ActionURL, n.ActionLabel, n.CreatedOn).Scan(&n.ID)
	return mapErr(err)
}

func (r *notificationRepository) ExistsKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM notifications WHERE key = $1)`, key).Scan(&exists)
	return exists, err
}

func (r *notificationRepository) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, error) {
	var total int64
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, task_id, title, message, is_read, COALESCE(key, ''),
	          COALESCE(action_url, ''), COALESCE(action_label, ''), created_on
	          FROM notifications WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.TaskID, &n.Title, &n.Message, &n.IsRead,
			&n.Key, &n.ActionURL, &n.ActionLabel, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, total, rows.Err()
}

// MarkAsRead flips is_read for a notification owned by userID. A row owned
// by someone else is indistinguishable from a missing one.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

// MarkAllRead succeeds even when the caller has no unread notifications.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	return mapErr(err)
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return count, nil
}
