package postgres

import (
	"context"
	"database/sql"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// GetOrCreate inserts the (kind, name, organisation) row if absent. Two
// callers racing on the same row converge: the loser's insert hits the
// unique constraint and falls back to reading the winner's row.
func (r *categoryRepository) GetOrCreate(ctx context.Context, kind domain.CategoryKind, orgID int64, name string) (*domain.Category, error) {
	c := &domain.Category{Kind: kind, Name: name, OrganisationID: orgID}

	selectQuery := `SELECT id FROM lead_categories WHERE kind = $1 AND organisation_id = $2 AND name = $3`
	err := r.db.QueryRowContext(ctx, selectQuery, kind, orgID, name).Scan(&c.ID)
	if err == nil {
		return c, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	insertQuery := `INSERT INTO lead_categories (kind, organisation_id, name) VALUES ($1, $2, $3) RETURNING id`
	err = r.db.QueryRowContext(ctx, insertQuery, kind, orgID, name).Scan(&c.ID)
	if err == nil {
		return c, nil
	}
	if !isUniqueViolation(err) {
		return nil, err
	}

	// Lost the race; the row exists now.
	if err := r.db.QueryRowContext(ctx, selectQuery, kind, orgID, name).Scan(&c.ID); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, scope authz.Scope, kind domain.CategoryKind, id int64) (*domain.Category, error) {
	pred := authz.CategoryScope(scope, authz.Filter{}, "c")
	query := `SELECT c.id, c.kind, c.name, c.organisation_id FROM lead_categories c
	          WHERE c.id = $1 AND c.kind = $2 AND ` + pred.SQL(3)
	args := append([]any{id, kind}, pred.Args()...)
	c := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Kind, &c.Name, &c.OrganisationID)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context, scope authz.Scope, filter authz.Filter, kind domain.CategoryKind) ([]domain.Category, error) {
	pred := authz.CategoryScope(scope, filter, "c")
	query := `SELECT c.id, c.kind, c.name, c.organisation_id FROM lead_categories c
	          WHERE c.kind = $1 AND ` + pred.SQL(2) + ` ORDER BY c.name`
	args := append([]any{kind}, pred.Args()...)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.OrganisationID); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, scope authz.Scope, c *domain.Category) error {
	pred := authz.CategoryScope(scope, authz.Filter{}, "lead_categories")
	query := `UPDATE lead_categories SET name = $1 WHERE id = $2 AND kind = $3 AND ` + pred.SQL(4)
	args := append([]any{c.Name, c.ID, c.Kind}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}
