package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type vendorRepository struct {
	mu      sync.RWMutex
	vendors map[uuid.UUID]domain.Vendor
}

// NewVendorRepository creates an empty vendor store
func NewVendorRepository() *vendorRepository {
	return &vendorRepository{vendors: make(map[uuid.UUID]domain.Vendor)}
}

func (r *vendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vendors[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "vendor", ID: id.String()}
	}
	return &v, nil
}

func (r *vendorRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.vendors {
		if !v.IsActive {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(v.APIKeyHash), []byte(apiKey)); err == nil {
			return &v, nil
		}
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	vendor.UpdatedAt = now

	r.vendors[vendor.ID] = *vendor
	return nil
}
