package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vendor represents a seller account; admins are vendors with RoleAdmin
type Vendor struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	APIKeyHash string    `json:"-"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Principal is the authenticated caller of a mutating operation
type Principal struct {
	VendorID uuid.UUID
	Role     Role
}

// IsAdmin reports whether the principal carries admin capability
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Product represents a catalog item
type Product struct {
	ID            uuid.UUID         `json:"id"`
	VendorID      uuid.UUID         `json:"vendor_id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	Category      string            `json:"category"`
	InStock       bool              `json:"in_stock"`
	Images        []string          `json:"images"`
	Discount      *decimal.Decimal  `json:"discount,omitempty"`
	Rating        *float64          `json:"rating,omitempty"`
	Reviews       []Review          `json:"reviews,omitempty"`
	BulkPricing   []BulkPricingTier `json:"bulk_pricing,omitempty"`
	Weight        *decimal.Decimal  `json:"weight,omitempty"`
	Dimensions    *Dimensions       `json:"dimensions,omitempty"`
	ShippingClass string            `json:"shipping_class,omitempty"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BulkPricingTier applies Price per unit at or above Quantity
type BulkPricingTier struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Dimensions of a packaged product in centimetres
type Dimensions struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// Review is a customer review attached to a product
type Review struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Country is destination reference data: currency, shipping and VAT
type Country struct {
	Code     string         `json:"code" yaml:"code"`
	Name     string         `json:"name" yaml:"name"`
	Currency Currency       `json:"currency" yaml:"currency"`
	Shipping ShippingConfig `json:"shipping" yaml:"shipping"`
	VAT      decimal.Decimal `json:"vat" yaml:"vat"`
}

// Currency of a country. Rate is units of this currency per one base unit.
type Currency struct {
	Code   string          `json:"code" yaml:"code"`
	Symbol string          `json:"symbol" yaml:"symbol"`
	Rate   decimal.Decimal `json:"rate" yaml:"rate"`
}

// ShippingConfig lists the methods offered to a country
type ShippingConfig struct {
	Available bool             `json:"available" yaml:"available"`
	Methods   []ShippingMethod `json:"methods" yaml:"methods"`
}

// ShippingMethod is a priced delivery option. Empty ShippingClasses and a nil
// MaxWeight accept any cart.
type ShippingMethod struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	Price             decimal.Decimal  `json:"price" yaml:"price"`
	EstimatedDelivery string           `json:"estimated_delivery" yaml:"estimated_delivery"`
	ShippingClasses   []string         `json:"shipping_classes,omitempty" yaml:"shipping_classes,omitempty"`
	MaxWeight         *decimal.Decimal `json:"max_weight,omitempty" yaml:"max_weight,omitempty"`
}

// CartItem is a snapshot of a product taken when it was added to the cart
type CartItem struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	Price     decimal.Decimal   `json:"price"`
	Image     string            `json:"image"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options,omitempty"`
}

// Address is a postal address attached to an order
type Address struct {
	Name       string  `json:"name"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      *string `json:"state,omitempty"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

// Order represents a placed customer order. Money fields are base currency.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	CustomerEmail    string          `json:"customer_email"`
	Items            []OrderItem     `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Shipping         decimal.Decimal `json:"shipping"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	Currency         string          `json:"currency"`
	CountryCode      string          `json:"country_code"`
	ShippingMethodID string          `json:"shipping_method_id"`
	Status           OrderStatus     `json:"status"`
	ShippingAddress  Address         `json:"shipping_address"`
	BillingAddress   Address         `json:"billing_address"`
	TrackingCarrier  *string         `json:"tracking_carrier,omitempty"`
	TrackingNumber   *string         `json:"tracking_number,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderItem is a cart line frozen at checkout with the unit price charged
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"-"`
	CartItem
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}

// ImageRef identifies a hosted image
type ImageRef struct {
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
}
