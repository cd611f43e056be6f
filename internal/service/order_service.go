package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, id)
}

// TrackOrder returns the public view of an order, without customer details
func (s *orderService) TrackOrder(ctx context.Context, id uuid.UUID) (*OrderStatusView, error) {
	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewOrderStatusView(order), nil
}

// GetOrderDetail returns the full order including customer details
func (s *orderService) GetOrderDetail(ctx context.Context, principal *domain.Principal, id uuid.UUID) (*domain.Order, error) {
	if err := requireAdmin(principal, "view order details"); err != nil {
		return nil, err
	}
	return s.repos.Order.GetByID(ctx, id)
}

// ListOrders lists orders by status, newest first; an empty status lists all
func (s *orderService) ListOrders(ctx context.Context, principal *domain.Principal, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if err := requireAdmin(principal, "list orders"); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, &errors.ErrValidation{Field: "status", Message: "unknown status " + string(status)}
	}
	return s.repos.Order.ListByStatus(ctx, status, limit, offset)
}

// ProcessOrder moves a pending order into processing
func (s *orderService) ProcessOrder(ctx context.Context, principal *domain.Principal, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, principal, id, domain.OrderStatusProcessing, nil)
}

// ShipOrder marks an order as shipped and records its tracking details
func (s *orderService) ShipOrder(ctx context.Context, principal *domain.Principal, id uuid.UUID, req ShipOrderRequest) (*domain.Order, error) {
	tracking := strings.TrimSpace(req.TrackingNumber)
	if tracking == "" {
		return nil, &errors.ErrValidation{Field: "tracking_number", Message: "is required to ship an order"}
	}

	data := map[string]interface{}{"tracking_number": tracking}
	if req.Carrier != nil {
		data["carrier"] = *req.Carrier
	}

	// Status and tracking are written together so a shipped order always
	// carries its tracking number.
	ship := func(from domain.OrderStatus) error {
		return s.repos.Order.Ship(ctx, id, from, req.Carrier, tracking)
	}
	order, err := s.transitionWith(ctx, principal, id, domain.OrderStatusShipped, data, ship)
	if err != nil {
		return nil, err
	}
	order.TrackingCarrier = req.Carrier
	order.TrackingNumber = &tracking
	return order, nil
}

// DeliverOrder marks a shipped order as delivered
func (s *orderService) DeliverOrder(ctx context.Context, principal *domain.Principal, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, principal, id, domain.OrderStatusDelivered, nil)
}

// CancelOrder cancels an order that has not shipped yet
func (s *orderService) CancelOrder(ctx context.Context, principal *domain.Principal, id uuid.UUID, reason string) (*domain.Order, error) {
	var data map[string]interface{}
	if reason != "" {
		data = map[string]interface{}{"reason": reason}
	}
	return s.transition(ctx, principal, id, domain.OrderStatusCancelled, data)
}

func (s *orderService) transition(ctx context.Context, principal *domain.Principal, id uuid.UUID, to domain.OrderStatus, data map[string]interface{}) (*domain.Order, error) {
	return s.transitionWith(ctx, principal, id, to, data, func(from domain.OrderStatus) error {
		return s.repos.Order.UpdateStatus(ctx, id, from, to)
	})
}

// transitionWith checks the state machine, performs write and records the
// status_change event once write has succeeded
func (s *orderService) transitionWith(ctx context.Context, principal *domain.Principal, id uuid.UUID, to domain.OrderStatus, data map[string]interface{}, write func(from domain.OrderStatus) error) (*domain.Order, error) {
	if err := requireAdmin(principal, "change order status"); err != nil {
		return nil, err
	}

	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(to) {
		return nil, &errors.ErrInvalidStateTransition{From: order.Status, To: to}
	}

	from := order.Status
	if err := write(from); err != nil {
		s.logger.Error("Failed to update order status",
			zap.String("order_id", id.String()),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return nil, err
	}
	order.Status = to

	// Log event
	eventData := map[string]interface{}{
		"from":     string(from),
		"to":       string(to),
		"actor_id": principal.VendorID.String(),
	}
	for k, v := range data {
		eventData[k] = v
	}
	event := &domain.OrderEvent{
		OrderID:   id,
		EventType: "status_change",
		EventData: eventData,
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event", zap.String("order_id", id.String()), zap.Error(err))
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return order, nil
}
