package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/pricing"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

type checkoutService struct {
	repos        *repository.Repositories
	baseCurrency string
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repos *repository.Repositories, baseCurrency string, m *metrics.Metrics, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		repos:        repos,
		baseCurrency: baseCurrency,
		metrics:      m,
		logger:       logger,
	}
}

// Quote prices a cart with the prices captured when items were added
func (s *checkoutService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	country, catalog, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.QuoteDisplayTotal(req.Cart(), *country, catalog)
	if err != nil {
		return nil, err
	}
	display, err := pricing.Display(totals, country.Currency)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{CountryCode: country.Code, Totals: totals, Display: display}, nil
}

// Checkout recomputes the cart against the current catalog and places a
// pending order for the recomputed total
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	resp, err := s.checkout(ctx, req)
	if err != nil {
		s.metrics.ObserveCheckout(outcome(err), 0)
		return nil, err
	}
	total, _ := resp.Order.Total.Float64()
	s.metrics.ObserveCheckout("placed", total)
	return resp, nil
}

func (s *checkoutService) checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if err := validateAddress("shipping_address", req.ShippingAddress); err != nil {
		return nil, err
	}
	if req.BillingAddress != nil {
		if err := validateAddress("billing_address", *req.BillingAddress); err != nil {
			return nil, err
		}
	}

	country, catalog, err := s.load(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.ComputeCheckoutTotal(req.Cart(), *country, catalog)
	if err != nil {
		return nil, err
	}
	display, err := pricing.Display(totals, country.Currency)
	if err != nil {
		return nil, err
	}

	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	order := &domain.Order{
		CustomerEmail:    strings.TrimSpace(req.CustomerEmail),
		Items:            make([]domain.OrderItem, 0, len(totals.Lines)),
		Subtotal:         totals.Subtotal,
		Shipping:         totals.Shipping,
		Tax:              totals.Tax,
		Total:            totals.Total,
		Currency:         s.baseCurrency,
		CountryCode:      country.Code,
		ShippingMethodID: totals.ShippingMethod.ID,
		Status:           domain.OrderStatusPending,
		ShippingAddress:  req.ShippingAddress,
		BillingAddress:   billing,
	}
	for i, line := range totals.Lines {
		order.Items = append(order.Items, domain.OrderItem{
			CartItem:  req.Items[i],
			UnitPrice: line.UnitPrice,
		})
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	// Log order creation event
	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		EventData: map[string]interface{}{
			"status":   string(order.Status),
			"total":    order.Total.String(),
			"currency": order.Currency,
			"country":  order.CountryCode,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("country", order.CountryCode),
		zap.String("total", order.Total.String()),
	)
	return &CheckoutResponse{Order: order, Display: display}, nil
}

func (s *checkoutService) load(ctx context.Context, req QuoteRequest) (*domain.Country, pricing.Catalog, error) {
	country, err := s.repos.Country.GetByCode(ctx, req.CountryCode)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.repos.Product.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	catalog := make(pricing.Catalog, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	return country, catalog, nil
}

func validateAddress(field string, a domain.Address) error {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return &errors.ErrValidation{Field: field + ".street", Message: "must not be empty"}
	case strings.TrimSpace(a.City) == "":
		return &errors.ErrValidation{Field: field + ".city", Message: "must not be empty"}
	case strings.TrimSpace(a.Country) == "":
		return &errors.ErrValidation{Field: field + ".country", Message: "must not be empty"}
	}
	return nil
}

func outcome(err error) string {
	var (
		notFound   *errors.ErrNotFound
		quantity   *errors.ErrInvalidQuantity
		tiers      *errors.ErrInvalidTierData
		rate       *errors.ErrInvalidRate
		noShipping *errors.ErrNoShippingAvailable
		outOfStock *errors.ErrOutOfStock
		validation *errors.ErrValidation
	)
	switch {
	case stderrors.As(err, &notFound):
		return "not_found"
	case stderrors.As(err, &quantity):
		return "invalid_quantity"
	case stderrors.As(err, &tiers):
		return "invalid_tier_data"
	case stderrors.As(err, &rate):
		return "invalid_rate"
	case stderrors.As(err, &noShipping):
		return "no_shipping_available"
	case stderrors.As(err, &outOfStock):
		return "out_of_stock"
	case stderrors.As(err, &validation):
		return "invalid_request"
	default:
		return "error"
	}
}
