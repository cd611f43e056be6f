// Package memory is an in-process repository driver used for local
// development (STORAGE_DRIVER=memory) and tests.
package memory

import (
	"github.com/jafarshop/storefront/internal/repository"
)

// NewRepositories creates empty in-memory repositories
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Product:    NewProductRepository(),
		Vendor:     NewVendorRepository(),
		Country:    NewCountryRepository(),
		Order:      NewOrderRepository(),
		OrderEvent: NewOrderEventRepository(),
	}
}
