package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

// NewOrderRepository creates an empty order store
func NewOrderRepository() *orderRepository {
	return &orderRepository{orders: make(map[uuid.UUID]domain.Order)}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}

	r.orders[order.ID] = *cloneOrder(*order)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return cloneOrder(o), nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if o.Status != from {
		return &errors.ErrConflict{Resource: "order", ID: id.String()}
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return nil
}

func (r *orderRepository) Ship(ctx context.Context, id uuid.UUID, from domain.OrderStatus, carrier *string, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if o.Status != from {
		return &errors.ErrConflict{Resource: "order", ID: id.String()}
	}
	o.Status = domain.OrderStatusShipped
	o.TrackingCarrier = carrier
	o.TrackingNumber = &trackingNumber
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return nil
}

func cloneOrder(o domain.Order) *domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	for i, item := range o.Items {
		if item.Options != nil {
			options := make(map[string]string, len(item.Options))
			for k, v := range item.Options {
				options[k] = v
			}
			item.Options = options
		}
		items[i] = item
	}
	o.Items = items
	return &o
}

type orderEventRepository struct {
	mu     sync.RWMutex
	events []domain.OrderEvent
}

// NewOrderEventRepository creates an empty audit trail
func NewOrderEventRepository() *orderEventRepository {
	return &orderEventRepository{}
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *orderEventRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.OrderEvent
	for _, e := range r.events {
		if e.OrderID == orderID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}
