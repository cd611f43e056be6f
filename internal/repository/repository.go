// Package repository defines the persistence contracts used by the services.
// Implementations live in the mongo, postgres, rediscache and memory
// subpackages.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
)

// ProductFilter narrows catalog browsing
type ProductFilter struct {
	Category string
	InStock  *bool
	Limit    int
	Offset   int
}

// ProductRepository stores the catalog
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// GetByIDs returns the products found; missing ids are omitted.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	// Update replaces the stored product when its version still equals
	// expectedVersion, then increments product.Version.
	Update(ctx context.Context, product *domain.Product, expectedVersion int64) error
}

// VendorRepository stores vendor and admin accounts
type VendorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Vendor, error)
	Create(ctx context.Context, vendor *domain.Vendor) error
}

// CountryRepository stores destination reference data
type CountryRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Country, error)
	List(ctx context.Context) ([]*domain.Country, error)
	Upsert(ctx context.Context, country *domain.Country) error
}

// OrderRepository stores placed orders and their items
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	// UpdateStatus moves an order from one status to another, failing with
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error
	// Ship moves an order from status from to shipped and stores its tracking
	// details in the same write, failing with ErrConflict like UpdateStatus.
	Ship(ctx context.Context, id uuid.UUID, from domain.OrderStatus, carrier *string, trackingNumber string) error
}

// OrderEventRepository stores the order audit trail
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// Repositories groups every repository a service may need
type Repositories struct {
	Product    ProductRepository
	Vendor     VendorRepository
	Country    CountryRepository
	Order      OrderRepository
	OrderEvent OrderEventRepository
}
