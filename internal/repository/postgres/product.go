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

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.organisation_id, p.category_id, p.subcategory_id, p.name,
	p.sku, p.price_cents, p.quantity, p.minimum_stock_level, p.created_on, p.updated_on`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(&p.ID, &p.OrganisationID, &p.CategoryID, &p.SubCategoryID, &p.Name,
		&p.SKU, &p.PriceCents, &p.Quantity, &p.MinimumStockLevel, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (organisation_id, category_id, subcategory_id, name, sku,
	          price_cents, quantity, minimum_stock_level, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now().UTC()
	p.CreatedOn = now
	p.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, p.OrganisationID, p.CategoryID, p.SubCategoryID,
		p.Name, p.SKU, p.PriceCents, p.Quantity, p.MinimumStockLevel, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
	return mapErr(err)
}

func (r *productRepository) GetByID(ctx context.Context, scope authz.Scope, id int64) (*domain.Product, error) {
	pred := authz.CategoryScope(scope, authz.Filter{}, "p")
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	return scanProduct(r.db.QueryRowContext(ctx, query, args...))
}

func (r *productRepository) Update(ctx context.Context, scope authz.Scope, p *domain.Product) error {
	pred := authz.CategoryScope(scope, authz.Filter{}, "products")
	query := `UPDATE products SET category_id=$1, subcategory_id=$2, name=$3, sku=$4,
	          price_cents=$5, quantity=$6, minimum_stock_level=$7, updated_on=$8
	          WHERE id=$9 AND ` + pred.SQL(10)
	p.UpdatedOn = time.Now().UTC()
	args := append([]any{p.CategoryID, p.SubCategoryID, p.Name, p.SKU, p.PriceCents,
		p.Quantity, p.MinimumStockLevel, p.UpdatedOn, p.ID}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *productRepository) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	pred := authz.CategoryScope(scope, authz.Filter{}, "products")
	query := `DELETE FROM products WHERE id = $1 AND ` + pred.SQL(2)
	args := append([]any{id}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *productRepository) List(ctx context.Context, scope authz.Scope, filter authz.Filter, limit, offset int) ([]domain.Product, int64, error) {
	pred := authz.CategoryScope(scope, filter, "p")
	where := pred.SQL(1)
	next := pred.NextIndex(1)

	var total int64
	countQuery := `SELECT count(*) FROM products p WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, pred.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products p WHERE `+where+
		` ORDER BY p.name LIMIT $%d OFFSET $%d`, next, next+1)
	args := append(pred.Args(), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *productRepository) CreateStockAlert(ctx context.Context, a *domain.StockAlert) error {
	query := `INSERT INTO stock_alerts (product_id, alert_type, severity, message, is_resolved, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	a.CreatedOn = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, a.ProductID, a.AlertType, a.Severity,
		a.Message, a.IsResolved, a.CreatedOn).Scan(&a.ID)
	return mapErr(err)
}

func (r *productRepository) ListStockAlerts(ctx context.Context, scope authz.Scope, unresolvedOnly bool) ([]domain.StockAlert, error) {
	pred := authz.CategoryScope(scope, authz.Filter{}, "p")
	query := `SELECT a.id, a.product_id, a.alert_type, a.severity, a.message, a.is_resolved, a.created_on
	          FROM stock_alerts a JOIN products p ON a.product_id = p.id
	          WHERE ` + pred.SQL(1)
	if unresolvedOnly {
		query += ` AND a.is_resolved = FALSE`
	}
	query += ` ORDER BY a.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, pred.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.StockAlert
	for rows.Next() {
		var a domain.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.AlertType, &a.Severity, &a.Message, &a.IsResolved, &a.CreatedOn); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *productRepository) ResolveStockAlert(ctx context.Context, scope authz.Scope, alertID int64) error {
	pred := authz.CategoryScope(scope, authz.Filter{}, "p")
	query := `UPDATE stock_alerts SET is_resolved = TRUE
	          WHERE id = $1 AND product_id IN (SELECT p.id FROM products p WHERE ` + pred.SQL(2) + `)`
	args := append([]any{alertID}, pred.Args()...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}
