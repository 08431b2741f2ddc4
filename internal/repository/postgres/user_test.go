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

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "first_name", "last_name",
		"phone_number", "role", "email_verified", "verification_token", "created_on", "updated_on"}).
		AddRow(10, "owner@test.com", "owner", "hash", "Ada", "Lovelace", "", domain.RoleOrganisor, true, "", time.Now(), time.Now())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		u := &domain.User{
			Email:        "owner@test.com",
			Username:     "owner",
			PasswordHash: "hash",
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Role:         domain.RoleOrganisor,
		}

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName,
				"", domain.RoleOrganisor, false, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

		err := repo.Create(ctx, u)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), u.ID)
		assert.False(t, u.CreatedOn.IsZero())
	})

	t.Run("DuplicateEmailMapsToDuplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &domain.User{Email: "owner@test.com", Username: "owner2"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("CaseInsensitive", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("Owner@Test.com").
			WillReturnRows(userRows())

		u, err := repo.GetByEmail(ctx, "Owner@Test.com")
		assert.NoError(t, err)
		assert.Equal(t, "owner@test.com", u.Email)
	})

	t.Run("MissingMapsToNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("nobody@test.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		u, err := repo.GetByEmail(ctx, "nobody@test.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, u)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &domain.User{ID: 99, Email: "x@test.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
