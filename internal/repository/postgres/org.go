package postgres

import (
	"context"
	"database/sql"
	"time"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type organisationRepository struct {
	db *sql.DB
}

func NewOrganisationRepository(db *sql.DB) repository.OrganisationRepository {
	return &organisationRepository{db: db}
}

func (r *organisationRepository) Create(ctx context.Context, o *domain.Organisation) error {
	query := `INSERT INTO organisations (name, owner_id, created_on) VALUES ($1, $2, $3) RETURNING id`
	o.CreatedOn = time.Now().UTC()
	return mapErr(r.db.QueryRowContext(ctx, query, o.Name, o.OwnerID, o.CreatedOn).Scan(&o.ID))
}

func (r *organisationRepository) GetByID(ctx context.Context, id int64) (*domain.Organisation, error) {
	o := &domain.Organisation{}
	query := `SELECT id, name, owner_id, created_on FROM organisations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.OwnerID, &o.CreatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return o, nil
}

func (r *organisationRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Organisation, error) {
	o := &domain.Organisation{}
	query := `SELECT id, name, owner_id, created_on FROM organisations WHERE owner_id = $1`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&o.ID, &o.Name, &o.OwnerID, &o.CreatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return o, nil
}

func (r *organisationRepository) List(ctx context.Context) ([]domain.Organisation, error) {
	query := `SELECT id, name, owner_id, created_on FROM organisations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organisation
	for rows.Next() {
		var o domain.Organisation
		if err := rows.Scan(&o.ID, &o.Name, &o.OwnerID, &o.CreatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

type organisorRepository struct {
	db *sql.DB
}

func NewOrganisorRepository(db *sql.DB) repository.OrganisorRepository {
	return &organisorRepository{db: db}
}

func (r *organisorRepository) Create(ctx context.Context, o *domain.Organisor) error {
	query := `INSERT INTO organisors (user_id, organisation_id) VALUES ($1, $2) RETURNING id`
	return mapErr(r.db.QueryRowContext(ctx, query, o.UserID, o.OrganisationID).Scan(&o.ID))
}

func (r *organisorRepository) GetByID(ctx context.Context, id int64) (*domain.Organisor, error) {
	o := &domain.Organisor{}
	query := `SELECT id, user_id, organisation_id FROM organisors WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.UserID, &o.OrganisationID)
	if err != nil {
		return nil, mapErr(err)
	}
	return o, nil
}

func (r *organisorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Organisor, error) {
	o := &domain.Organisor{}
	query := `SELECT id, user_id, organisation_id FROM organisors WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&o.ID, &o.UserID, &o.OrganisationID)
	if err != nil {
		return nil, mapErr(err)
	}
	return o, nil
}

func (r *organisorRepository) List(ctx context.Context) ([]domain.Organisor, error) {
	query := `SELECT o.id, o.user_id, o.organisation_id FROM organisors o ORDER BY o.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var organisors []domain.Organisor
	for rows.Next() {
		var o domain.Organisor
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrganisationID); err != nil {
			return nil, err
		}
		organisors = append(organisors, o)
	}
	return organisors, rows.Err()
}
