package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// CartProfile is what shipping eligibility looks at in a cart
type CartProfile struct {
	TotalWeight     decimal.Decimal
	ShippingClasses []string
}

// SelectMethods returns the shipping methods a country offers for a cart, in
// stored order. It returns an empty slice when the country has shipping
// disabled; callers must treat that as terminal. When shipping is enabled but
// no method accepts the cart, it fails with ErrNoShippingAvailable.
func SelectMethods(country domain.Country, profile CartProfile) ([]domain.ShippingMethod, error) {
	if !country.Shipping.Available {
		return []domain.ShippingMethod{}, nil
	}

	eligible := make([]domain.ShippingMethod, 0, len(country.Shipping.Methods))
	for _, method := range country.Shipping.Methods {
		if acceptsCart(method, profile) {
			eligible = append(eligible, method)
		}
	}

	if len(eligible) == 0 {
		return nil, &errors.ErrNoShippingAvailable{CountryCode: country.Code}
	}
	return eligible, nil
}

func acceptsCart(method domain.ShippingMethod, profile CartProfile) bool {
	if method.MaxWeight != nil && profile.TotalWeight.GreaterThan(*method.MaxWeight) {
		return false
	}
	if len(method.ShippingClasses) == 0 {
		return true
	}

	allowed := make(map[string]struct{}, len(method.ShippingClasses))
	for _, class := range method.ShippingClasses {
		allowed[class] = struct{}{}
	}
	for _, class := range profile.ShippingClasses {
		if _, ok := allowed[class]; !ok {
			return false
		}
	}
	return true
}
