package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
)

func TestCategoryRepository_GetOrCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()

	t.Run("ExistingRowReturned", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM lead_categories WHERE kind = \\$1 AND organisation_id = \\$2 AND name = \\$3").
			WithArgs(domain.CategorySource, int64(5), "Referral").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		c, err := repo.GetOrCreate(ctx, domain.CategorySource, 5, "Referral")
		assert.NoError(t, err)
		assert.Equal(t, int64(11), c.ID)
	})

	t.Run("MissingRowInserted", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM lead_categories").
			WithArgs(domain.CategoryValue, int64(5), "High").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery("INSERT INTO lead_categories").
			WithArgs(domain.CategoryValue, int64(5), "High").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

		c, err := repo.GetOrCreate(ctx, domain.CategoryValue, 5, "High")
		assert.NoError(t, err)
		assert.Equal(t, int64(12), c.ID)
	})

	t.Run("LostRaceFallsBackToWinnerRow", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM lead_categories").
			WithArgs(domain.CategorySource, int64(5), "Web").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery("INSERT INTO lead_categories").
			WithArgs(domain.CategorySource, int64(5), "Web").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectQuery("SELECT id FROM lead_categories").
			WithArgs(domain.CategorySource, int64(5), "Web").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))

		c, err := repo.GetOrCreate(ctx, domain.CategorySource, 5, "Web")
		assert.NoError(t, err)
		assert.Equal(t, int64(13), c.ID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()
	scope := authz.Organisor(10, 5)

	t.Run("DuplicateNameMapsToDuplicate", func(t *testing.T) {
		mock.ExpectExec("UPDATE lead_categories SET name = \\$1").
			WithArgs("Referral", int64(2), domain.CategorySource, int64(5)).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Update(ctx, scope, &domain.Category{ID: 2, Kind: domain.CategorySource, Name: "Referral"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("ForeignTenantRowReadsAsMissing", func(t *testing.T) {
		mock.ExpectExec("UPDATE lead_categories SET name = \\$1").
			WithArgs("Referral", int64(2), domain.CategorySource, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, scope, &domain.Category{ID: 2, Kind: domain.CategorySource, Name: "Referral"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
