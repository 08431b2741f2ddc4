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

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) repository.LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `l.id, l.organisation_id, l.agent_id, l.first_name, l.last_name,
	COALESCE(l.age, 0), COALESCE(l.email, ''), COALESCE(l.phone_number, ''), COALESCE(l.description, ''),
	l.source_category_id, l.value_category_id, l.converted_date, l.created_on`

func scanLead(row interface{ Scan(...any) error }) (*domain.Lead, error) {
	l := &domain.Lead{}
	err := row.Scan(&l.ID, &l.OrganisationID, &l.AgentID, &l.FirstName, &l.LastName,
		&l.Age, &l.Email, &l.PhoneNumber, &l.Description,
		&l.SourceCategoryID, &l.ValueCategoryID, &l.ConvertedDate, &l.CreatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return l, nil
}

func (r *leadRepository) Create(ctx context.Context, l *domain.Lead) error {
	query := `INSERT INTO leads (organisation_id, agent_id, first_name, last_name, age, email, phone_number,
	          description, source_category_id, value_category_id, converted_date, created_on)
	          VALUES ($1, $2, $3, $4, NULLIF($5, 0), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12)
	          RETURNING id`
	l.CreatedOn = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, l.OrganisationID, l.AgentID, l.FirstName, l.LastName,
		l.Age, l.Email, l.PhoneNumber, l.Description, l.SourceCategoryID, l.ValueCategoryID,
		l.ConvertedDate, l.CreatedOn).Scan(&l.ID)
	return mapErr(err)
}

func (r *leadRepository) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Lead, error) {
	pred := authz.LeadScope(scope, authz.Filter{}, "l")
	query := `SELECT ` + leadColumns + ` FROM leads l WHERE l.id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	return scanLead(r.db.QueryRowContext(ctx, query, args...))
}

func (r *leadRepository) Update(ctx context.Context, scope authz.Scope, l *domain.Lead) error {
	pred := authz.LeadScope(scope, authz.Filter{}, "leads")
	query := `UPDATE leads SET first_name=$1, last_name=$2, age=NULLIF($3, 0), email=NULLIF($4, ''),
	          phone_number=NULLIF($5, ''), description=NULLIF($6, ''), agent_id=$7,
	          source_category_id=$8, value_category_id=$9, converted_date=$10
	          WHERE id=$11 AND ` + pred.SQL(12)
	args := append([]any{l.FirstName, l.LastName, l.Age, l.Email, l.PhoneNumber, l.Description,
		l.AgentID, l.SourceCategoryID, l.ValueCategoryID, l.ConvertedDate, l.ID}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *leadRepository) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	pred := authz.LeadScope(scope, authz.Filter{}, "leads")
	query := `DELETE FROM leads WHERE id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *leadRepository) List(ctx context.Context, scope authz.Scope, filter repository.LeadFilter, limit, offset int) ([]domain.Lead, int64, error) {
	pred := authz.LeadScope(scope, filter.Filter, "l")
	if filter.SourceCategoryID != 0 {
		pred.And("l.source_category_id = ?", filter.SourceCategoryID)
	}
	if filter.ValueCategoryID != 0 {
		pred.And("l.value_category_id = ?", filter.ValueCategoryID)
	}
	if filter.Unassigned {
		pred.And("l.agent_id IS NULL")
	}
	where := pred.SQL(1)
	next := pred.NextIndex(1)

	var total int64
	countQuery := `SELECT count(*) FROM leads l WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, pred.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+leadColumns+` FROM leads l WHERE `+where+
		` ORDER BY l.created_on DESC LIMIT $%d OFFSET $%d`, next, next+1)
	args := append(pred.Args(), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *l)
	}
	return leads, total, rows.Err()
}

// DaysSinceLastOrder measures lead idleness: days since the most recent
// non-cancelled order, or since the lead's creation when it has none.
func (r *leadRepository) DaysSinceLastOrder(ctx context.Context, leadID int64) (int, error) {
	query := `SELECT EXTRACT(DAY FROM now() - COALESCE(
	            (SELECT MAX(order_day) FROM orders WHERE lead_id = l.id AND is_cancelled = FALSE),
	            l.created_on))::int
	          FROM leads l WHERE l.id = $1`
	var days int
	if err := r.db.QueryRowContext(ctx, query, leadID).Scan(&days); err != nil {
		return 0, mapErr(err)
	}
	return days, nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
