package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/pricing"
)

// CreateProductRequest represents the add product payload. VendorID is only
// honoured for admins; vendors always create products they own.
type CreateProductRequest struct {
	VendorID      *uuid.UUID               `json:"vendor_id,omitempty"`
	Name          string                   `json:"name" binding:"required"`
	Description   string                   `json:"description"`
	Price         decimal.Decimal          `json:"price"`
	Category      string                   `json:"category"`
	InStock       bool                     `json:"in_stock"`
	Images        []string                 `json:"images"`
	Discount      *decimal.Decimal         `json:"discount,omitempty"`
	BulkPricing   []domain.BulkPricingTier `json:"bulk_pricing,omitempty"`
	Weight        *decimal.Decimal         `json:"weight,omitempty"`
	Dimensions    *domain.Dimensions       `json:"dimensions,omitempty"`
	ShippingClass string                   `json:"shipping_class,omitempty"`
}

// UpdateProductRequest represents a partial product update; omitted fields
// are left unchanged
type UpdateProductRequest struct {
	Name          *string                   `json:"name,omitempty"`
	Description   *string                   `json:"description,omitempty"`
	Price         *decimal.Decimal          `json:"price,omitempty"`
	Category      *string                   `json:"category,omitempty"`
	InStock       *bool                     `json:"in_stock,omitempty"`
	Images        *[]string                 `json:"images,omitempty"`
	Discount      *decimal.Decimal          `json:"discount,omitempty"`
	ClearDiscount bool                      `json:"clear_discount,omitempty"`
	BulkPricing   *[]domain.BulkPricingTier `json:"bulk_pricing,omitempty"`
	Weight        *decimal.Decimal          `json:"weight,omitempty"`
	Dimensions    *domain.Dimensions        `json:"dimensions,omitempty"`
	ShippingClass *string                   `json:"shipping_class,omitempty"`
}

// Patch converts the request into a domain patch
func (r UpdateProductRequest) Patch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Category:      r.Category,
		InStock:       r.InStock,
		Images:        r.Images,
		Discount:      r.Discount,
		ClearDiscount: r.ClearDiscount,
		BulkPricing:   r.BulkPricing,
		Weight:        r.Weight,
		Dimensions:    r.Dimensions,
		ShippingClass: r.ShippingClass,
	}
}

// ProductView is a product as shown to shoppers
type ProductView struct {
	*domain.Product
	ListPrice decimal.Decimal `json:"list_price"`
	Localized *LocalizedPrice `json:"localized_price,omitempty"`
}

// LocalizedPrice is the list price converted for one destination country
type LocalizedPrice struct {
	CountryCode  string          `json:"country_code"`
	CurrencyCode string          `json:"currency_code"`
	Symbol       string          `json:"symbol"`
	Price        decimal.Decimal `json:"price"`
}

// QuoteRequest represents a cart quote payload
type QuoteRequest struct {
	CountryCode      string            `json:"country_code" binding:"required"`
	ShippingMethodID string            `json:"shipping_method_id"`
	Items            []domain.CartItem `json:"items" binding:"required,min=1"`
}

// Cart converts the request into pricing input
func (r QuoteRequest) Cart() pricing.Cart {
	return pricing.Cart{Items: r.Items, ShippingMethodID: r.ShippingMethodID}
}

// QuoteResponse carries base currency totals and their converted rendering
type QuoteResponse struct {
	CountryCode string                 `json:"country_code"`
	Totals      *pricing.Totals        `json:"totals"`
	Display     *pricing.DisplayTotals `json:"display"`
}

// CheckoutRequest represents the checkout confirmation payload
type CheckoutRequest struct {
	QuoteRequest
	CustomerEmail   string          `json:"customer_email" binding:"required,email"`
	ShippingAddress domain.Address  `json:"shipping_address"`
	BillingAddress  *domain.Address `json:"billing_address,omitempty"`
}

// CheckoutResponse represents a placed order
type CheckoutResponse struct {
	Order   *domain.Order          `json:"order"`
	Display *pricing.DisplayTotals `json:"display"`
}

// OrderStatusView is the public order tracking view. It leaves out the
// customer email and addresses.
type OrderStatusView struct {
	ID               uuid.UUID          `json:"id"`
	Items            []domain.OrderItem `json:"items"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	Shipping         decimal.Decimal    `json:"shipping"`
	Tax              decimal.Decimal    `json:"tax"`
	Total            decimal.Decimal    `json:"total"`
	Currency         string             `json:"currency"`
	CountryCode      string             `json:"country_code"`
	ShippingMethodID string             `json:"shipping_method_id"`
	Status           domain.OrderStatus `json:"status"`
	TrackingCarrier  *string            `json:"tracking_carrier,omitempty"`
	TrackingNumber   *string            `json:"tracking_number,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewOrderStatusView copies the non-personal fields of an order
func NewOrderStatusView(o *domain.Order) *OrderStatusView {
	return &OrderStatusView{
		ID:               o.ID,
		Items:            o.Items,
		Subtotal:         o.Subtotal,
		Shipping:         o.Shipping,
		Tax:              o.Tax,
		Total:            o.Total,
		Currency:         o.Currency,
		CountryCode:      o.CountryCode,
		ShippingMethodID: o.ShippingMethodID,
		Status:           o.Status,
		TrackingCarrier:  o.TrackingCarrier,
		TrackingNumber:   o.TrackingNumber,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ShipOrderRequest represents ship order request
type ShipOrderRequest struct {
	Carrier        *string `json:"carrier,omitempty"`
	TrackingNumber string  `json:"tracking_number" binding:"required"`
}

// CancelOrderRequest represents cancel order request
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}
