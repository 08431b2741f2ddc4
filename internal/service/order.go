package service

import (
	"context"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type orderService struct {
	orderRepo repository.OrderRepository
	leadRepo  repository.LeadRepository
	agentRepo repository.AgentRepository
	activity  ActivityService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	leadRepo repository.LeadRepository,
	agentRepo repository.AgentRepository,
	activity ActivityService,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		leadRepo:  leadRepo,
		agentRepo: agentRepo,
		activity:  activity,
	}
}

func (s *orderService) Create(ctx context.Context, scope authz.Scope, order *domain.Order) (*domain.Order, error) {
	if !scope.IsAdmin() {
		order.OrganisationID = scope.OrgID
	}
	if err := s.validateOrder(ctx, scope, order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	orgID := order.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionOrderCreated,
		ObjectType:     "order",
		ObjectID:       &order.ID,
		ObjectRepr:     order.Description,
		OrganisationID: &orgID,
	})
	return order, nil
}

func (s *orderService) validateOrder(ctx context.Context, scope authz.Scope, order *domain.Order) error {
	fields := map[string]string{}
	if order.OrganisationID == 0 {
		fields["organisation_id"] = "organisation is required"
	}
	if order.AmountCents < 0 {
		fields["amount_cents"] = "amount must not be negative"
	}
	if order.OrderDay.IsZero() {
		fields["order_day"] = "order day is required"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	if order.LeadID != nil {
		// The referenced lead must be visible to the caller and live in
		// the order's organisation.
		lead, err := s.leadRepo.GetByID(ctx, scope, *order.LeadID)
		if err != nil || lead.OrganisationID != order.OrganisationID {
			return domain.NewValidationError("lead_id", "lead does not belong to the selected organisation")
		}
	}
	return nil
}

func (s *orderService) Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, scope, id)
}

func (s *orderService) Update(ctx context.Context, scope authz.Scope, order *domain.Order) (*domain.Order, error) {
	existing, err := s.orderRepo.GetByID(ctx, scope, order.ID)
	if err != nil {
		return nil, err
	}
	order.OrganisationID = existing.OrganisationID
	if err := s.validateOrder(ctx, scope, order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, scope, order); err != nil {
		return nil, err
	}

	orgID := order.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionOrderUpdated,
		ObjectType:     "order",
		ObjectID:       &order.ID,
		ObjectRepr:     order.Description,
		OrganisationID: &orgID,
	})
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, scope authz.Scope, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if order.IsCancelled {
		return order, nil
	}
	order.IsCancelled = true
	if err := s.orderRepo.Update(ctx, scope, order); err != nil {
		return nil, err
	}

	orgID := order.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionOrderCancelled,
		ObjectType:     "order",
		ObjectID:       &order.ID,
		ObjectRepr:     order.Description,
		OrganisationID: &orgID,
	})
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	order, err := s.orderRepo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if scope.IsAgent() {
		return domain.ErrNotFound
	}
	if err := s.orderRepo.Delete(ctx, scope, id); err != nil {
		return err
	}

	orgID := order.OrganisationID
	s.activity.Record(ctx, &scope, domain.ActivityLog{
		Action:         domain.ActionOrderDeleted,
		ObjectType:     "order",
		ObjectID:       &order.ID,
		ObjectRepr:     order.Description,
		OrganisationID: &orgID,
	})
	return nil
}

func (s *orderService) List(ctx context.Context, scope authz.Scope, filter authz.Filter, page, pageSize int) ([]domain.Order, int64, error) {
	filter = authz.Normalize(scope, filter, func(agentID int64) (int64, error) {
		return s.agentRepo.OrganisationOf(ctx, agentID)
	})
	limit, offset := pageWindow(page, pageSize)
	return s.orderRepo.List(ctx, scope, filter, limit, offset)
}
