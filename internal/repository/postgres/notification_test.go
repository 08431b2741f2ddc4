package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"leadhub-backend/internal/domain"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		n := &domain.Notification{
			UserID:  7,
			Title:   "New task assigned",
			Message: "msg",
			Key:     domain.TaskAssignedKey(3),
		}

		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(n.UserID, nil, n.Title, n.Message, false, n.Key, "", "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, n)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), n.ID)
	})

	t.Run("KeyConflictMapsToDuplicate", func(t *testing.T) {
		n := &domain.Notification{
			UserID: 7,
			Title:  "New task assigned",
			Key:    domain.TaskAssignedKey(3),
		}

		mock.ExpectQuery("INSERT INTO notifications").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, n)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ExistsKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS \\(SELECT 1 FROM notifications WHERE key = \\$1\\)").
		WithArgs("task_deadline_3_1d").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS \\(SELECT 1 FROM notifications WHERE key = \\$1\\)").
		WithArgs("task_deadline_9_1d").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsKey(ctx, "task_deadline_3_1d")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsKey(ctx, "task_deadline_9_1d")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Owned", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(int64(5), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkAsRead(ctx, 5, 7))
	})

	t.Run("ForeignRowReadsAsMissing", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(int64(5), int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkAsRead(ctx, 5, 8), domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead_NoRowsOK(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET is_read = TRUE WHERE user_id = \\$1 AND is_read = FALSE").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.MarkAllRead(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM notifications WHERE user_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = \\$1 ORDER BY created_on DESC").
		WithArgs(int64(7), 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "task_id", "title", "message", "is_read", "key", "action_url", "action_label", "created_on"}).
			AddRow(2, 7, nil, "b", "m", false, "", "", "", time.Now()).
			AddRow(1, 7, nil, "a", "m", true, "", "", "", time.Now()))

	notes, total, err := repo.List(context.Background(), 7, 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, notes, 2)
	assert.Equal(t, int64(2), notes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
