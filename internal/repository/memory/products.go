package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

type productRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

// NewProductRepository creates an empty product store
func NewProductRepository() *productRepository {
	return &productRepository{products: make(map[uuid.UUID]domain.Product)}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return cloneProduct(p), nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Product
	for _, p := range r.sorted() {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *productRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Product
	for _, p := range r.sorted() {
		if p.VendorID == vendorID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if _, exists := r.products[product.ID]; exists {
		return &errors.ErrConflict{Resource: "product", ID: product.ID.String()}
	}
	product.Version = 1
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products[product.ID] = *cloneProduct(*product)
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}
	if stored.Version != expectedVersion {
		return &errors.ErrConflict{Resource: "product", ID: product.ID.String()}
	}

	product.Version = expectedVersion + 1
	product.CreatedAt = stored.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = *cloneProduct(*product)
	return nil
}

// sorted returns products oldest first; callers hold the lock
func (r *productRepository) sorted() []domain.Product {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneProduct(p domain.Product) *domain.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Reviews = append([]domain.Review(nil), p.Reviews...)
	p.BulkPricing = append([]domain.BulkPricingTier(nil), p.BulkPricing...)
	if p.Discount != nil {
		d := *p.Discount
		p.Discount = &d
	}
	if p.Weight != nil {
		w := *p.Weight
		p.Weight = &w
	}
	if p.Dimensions != nil {
		d := *p.Dimensions
		p.Dimensions = &d
	}
	if p.Rating != nil {
		rating := *p.Rating
		p.Rating = &rating
	}
	return &p
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
