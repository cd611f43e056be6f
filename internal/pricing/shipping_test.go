package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storefront/internal/domain"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

func weight(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func shippingCountry() domain.Country {
	return domain.Country{
		Code: "DE",
		Shipping: domain.ShippingConfig{
			Available: true,
			Methods: []domain.ShippingMethod{
				{ID: "standard", Price: dec("4.99"), MaxWeight: weight("20")},
				{ID: "express", Price: dec("9.99")},
				{ID: "freight", Price: dec("49.00"), ShippingClasses: []string{"bulky", "standard"}},
			},
		},
	}
}

func methodIDs(methods []domain.ShippingMethod) []string {
	ids := make([]string, len(methods))
	for i, m := range methods {
		ids[i] = m.ID
	}
	return ids
}

func TestSelectMethods_Unfiltered(t *testing.T) {
	methods, err := SelectMethods(shippingCountry(), CartProfile{TotalWeight: dec("1")})
	require.NoError(t, err)
	require.Equal(t, []string{"standard", "express", "freight"}, methodIDs(methods))
}

func TestSelectMethods_Unavailable(t *testing.T) {
	country := shippingCountry()
	country.Shipping.Available = false

	methods, err := SelectMethods(country, CartProfile{})
	require.NoError(t, err)
	require.Empty(t, methods)
}

func TestSelectMethods_FiltersByWeightAndClass(t *testing.T) {
	methods, err := SelectMethods(shippingCountry(), CartProfile{TotalWeight: dec("25")})
	require.NoError(t, err)
	require.Equal(t, []string{"express", "freight"}, methodIDs(methods))

	methods, err = SelectMethods(shippingCountry(), CartProfile{
		TotalWeight:     dec("25"),
		ShippingClasses: []string{"bulky"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"express", "freight"}, methodIDs(methods))

	methods, err = SelectMethods(shippingCountry(), CartProfile{
		TotalWeight:     dec("2"),
		ShippingClasses: []string{"bulky", "fragile"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"standard", "express"}, methodIDs(methods))
}

func TestSelectMethods_NothingEligible(t *testing.T) {
	country := shippingCountry()
	country.Shipping.Methods = []domain.ShippingMethod{
		{ID: "letter", Price: dec("1.50"), MaxWeight: weight("0.5")},
	}

	methods, err := SelectMethods(country, CartProfile{TotalWeight: dec("3")})
	require.Nil(t, methods)

	var target *apperrors.ErrNoShippingAvailable
	require.True(t, errors.As(err, &target))
	require.Equal(t, "DE", target.CountryCode)
}
