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

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `o.id, o.organisation_id, o.lead_id, COALESCE(o.description, ''),
	o.amount_cents, o.order_day, o.is_cancelled, o.created_on`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(&o.ID, &o.OrganisationID, &o.LeadID, &o.Description,
		&o.AmountCents, &o.OrderDay, &o.IsCancelled, &o.CreatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (organisation_id, lead_id, description, amount_cents, order_day, is_cancelled, created_on)
	          VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7) RETURNING id`
	o.CreatedOn = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, o.OrganisationID, o.LeadID, o.Description,
		o.AmountCents, o.OrderDay, o.IsCancelled, o.CreatedOn).Scan(&o.ID)
	return mapErr(err)
}

func (r *orderRepository) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Order, error) {
	pred := authz.OrderScope(scope, authz.Filter{}, "o")
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	return scanOrder(r.db.QueryRowContext(ctx, query, args...))
}

func (r *orderRepository) Update(ctx context.Context, scope authz.Scope, o *domain.Order) error {
	pred := authz.OrderScope(scope, authz.Filter{}, "orders")
	query := `UPDATE orders SET lead_id=$1, description=NULLIF($2, ''), amount_cents=$3,
	          order_day=$4, is_cancelled=$5 WHERE id=$6 AND ` + pred.SQL(7)
	args := append([]any{o.LeadID, o.Description, o.AmountCents, o.OrderDay, o.IsCancelled, o.ID}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *orderRepository) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	pred := authz.OrderScope(scope, authz.Filter{}, "orders")
	query := `DELETE FROM orders WHERE id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *orderRepository) List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.Order, int64, error) {
	pred := authz.OrderScope(scope, filter, "o")
	where := pred.SQL(1)
	next := pred.NextIndex(1)

	var total int64
	countQuery := `SELECT count(*) FROM orders o WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, pred.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders o WHERE `+where+
		` ORDER BY o.order_day DESC LIMIT $%d OFFSET $%d`, next, next+1)
	args := append(pred.Args(), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}
