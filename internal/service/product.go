package service

import (
	"context"
	"fmt"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	activity    ActivityService
	notify      NotificationService
}

func NewProductService(
	productRepo repository.ProductRepository,
	activity ActivityService,
	notify NotificationService,
) ProductService {
	return &productService{
		productRepo: productRepo,
		activity:    activity,
		notify:      notify,
	}
}

func (s *productService) Create(ctx context.Context, scope authz.Scope, product *domain.Product) (*domain.Product, error) {
	if scope.IsAgent() {
		return nil, domain.ErrNotFound
	}
	if !scope.IsAdmin() {
		product.OrganisationID = scope.OrgID
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	orgID := product.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionProductCreated,
		ObjectType:     "product",
		ObjectID:       &product.ID,
		ObjectRepr:     product.Name,
		OrganisationID: &orgID,
	})

	// A product created already under its minimum raises an alert too.
	s.raiseStockAlertIfCrossed(ctx, nil, product)
	return product, nil
}

func validateProduct(p *domain.Product) error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "name is required"
	}
	if p.SKU == "" {
		fields["sku"] = "sku is required"
	}
	if p.OrganisationID == 0 {
		fields["organisation_id"] = "organisation is required"
	}
	if p.PriceCents < 0 {
		fields["price_cents"] = "price must not be negative"
	}
	if p.Quantity < 0 {
		fields["quantity"] = "quantity must not be negative"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *productService) Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, scope, id)
}

func (s *productService) Update(ctx context.Context, scope authz.Scope, product *domain.Product) (*domain.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, scope, product.ID)
	if err != nil {
		return nil, err
	}
	product.OrganisationID = existing.OrganisationID
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, scope, product); err != nil {
		return nil, err
	}

	orgID := product.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionProductUpdated,
		ObjectType:     "product",
		ObjectID:       &product.ID,
		ObjectRepr:     product.Name,
		OrganisationID: &orgID,
	})

	s.raiseStockAlertIfCrossed(ctx, existing, product)
	return product, nil
}

func (s *productService) UpdatePrice(ctx context.Context, scope authz.Scope, id, priceCents int64) (*domain.Product, error) {
	if priceCents < 0 {
		return nil, domain.NewValidationError("price_cents", "price must not be negative")
	}
	product, err := s.productRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	oldPrice := product.PriceCents
	product.PriceCents = priceCents
	if err := s.productRepo.Update(ctx, scope, product); err != nil {
		return nil, err
	}

	orgID := product.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionPriceUpdated,
		ObjectType:     "product",
		ObjectID:       &product.ID,
		ObjectRepr:     product.Name,
		Details:        map[string]any{"old_price": oldPrice, "new_price": priceCents},
		OrganisationID: &orgID,
	})
	return product, nil
}

func (s *productService) UpdateStock(ctx context.Context, scope authz.Scope, id int64, quantity int) (*domain.Product, error) {
	if quantity < 0 {
		return nil, domain.NewValidationError("quantity", "quantity must not be negative")
	}
	product, err := s.productRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	before := *product
	product.Quantity = quantity
	if err := s.productRepo.Update(ctx, scope, product); err != nil {
		return nil, err
	}

	orgID := product.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionStockUpdated,
		ObjectType:     "product",
		ObjectID:       &product.ID,
		ObjectRepr:     product.Name,
		Details:        map[string]any{"old_quantity": before.Quantity, "new_quantity": quantity},
		OrganisationID: &orgID,
	})

	s.raiseStockAlertIfCrossed(ctx, &before, product)
	return product, nil
}

// raiseStockAlertIfCrossed creates a StockAlert (and the owner's
// notification) only when stock crosses the minimum level downwards.
// Saves that leave the product on the same side of the threshold
// produce nothing.
func (s *productService) raiseStockAlertIfCrossed(ctx context.Context, before, after *domain.Product) {
	wasBelow := before != nil && before.BelowMinimum()
	if wasBelow || !after.BelowMinimum() {
		return
	}

	alert := &domain.StockAlert{
		ProductID: after.ID,
		AlertType: domain.StockAlertLowStock,
		Severity:  domain.StockAlertWarning,
		Message: fmt.Sprintf("Stock for %q is down to %d (minimum %d).",
			after.Name, after.Quantity, after.MinimumStockLevel),
	}
	if after.Quantity == 0 {
		alert.AlertType = domain.StockAlertOutOfStock
		alert.Severity = domain.StockAlertCritical
		alert.Message = fmt.Sprintf("%q is out of stock.", after.Name)
	}
	if err := s.productRepo.CreateStockAlert(ctx, alert); err != nil {
		return
	}
	s.notify.NotifyStockAlert(ctx, after, alert)
}

func (s *productService) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	product, err := s.productRepo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	if err := s.productRepo.Delete(ctx, scope, id); err != nil {
		return err
	}

	orgID := product.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionProductDeleted,
		ObjectType:     "product",
		ObjectID:       &product.ID,
		ObjectRepr:     product.Name,
		OrganisationID: &orgID,
	})
	return nil
}

func (s *productService) List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.Product, int64, error) {
	limit, offset := pageWindow(page, pageSize)
	if !scope.IsAdmin() {
		filter.OrgID = scope.OrgID
	}
	return s.productRepo.List(ctx, scope, filter, limit, offset)
}

func (s *productService) ListStockAlerts(ctx context.Context, scope authz.Scope, unresolvedOnly bool) ([]domain.StockAlert, error) {
	return s.productRepo.ListStockAlerts(ctx, scope, unresolvedOnly)
}

func (s *productService) ResolveStockAlert(ctx context.Context, scope authz.Scope, alertID int64) error {
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	return s.productRepo.ResolveStockAlert(ctx, scope, alertID)
}
