package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type countryRepository struct {
	mu        sync.RWMutex
	countries map[string]domain.Country
}

// NewCountryRepository creates an empty country store
func NewCountryRepository() *countryRepository {
	return &countryRepository{countries: make(map[string]domain.Country)}
}

func (r *countryRepository) GetByCode(ctx context.Context, code string) (*domain.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.countries[strings.ToUpper(code)]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "country", ID: code}
	}
	return cloneCountry(c), nil
}

func (r *countryRepository) List(ctx context.Context) ([]*domain.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Country, 0, len(r.countries))
	for _, c := range r.countries {
		out = append(out, cloneCountry(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *countryRepository) Upsert(ctx context.Context, country *domain.Country) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.countries[strings.ToUpper(country.Code)] = *cloneCountry(*country)
	return nil
}

func cloneCountry(c domain.Country) *domain.Country {
	methods := make([]domain.ShippingMethod, len(c.Shipping.Methods))
	for i, m := range c.Shipping.Methods {
		m.ShippingClasses = append([]string(nil), m.ShippingClasses...)
		if m.MaxWeight != nil {
			w := *m.MaxWeight
			m.MaxWeight = &w
		}
		methods[i] = m
	}
	c.Shipping.Methods = methods
	return &c
}
