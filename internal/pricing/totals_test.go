package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storefront/internal/domain"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

func destination() domain.Country {
	return domain.Country{
		Code:     "GB",
		Name:     "United Kingdom",
		Currency: domain.Currency{Code: "GBP", Symbol: "£", Rate: dec("0.79")},
		Shipping: domain.ShippingConfig{
			Available: true,
			Methods: []domain.ShippingMethod{
				{ID: "standard", Name: "Standard", Price: dec("5.00"), EstimatedDelivery: "3-5 days"},
				{ID: "express", Name: "Express", Price: dec("12.50"), EstimatedDelivery: "1 day"},
			},
		},
		VAT: dec("20"),
	}
}

func product(price string) *domain.Product {
	return &domain.Product{
		ID:      uuid.New(),
		Name:    "Widget",
		Price:   dec(price),
		InStock: true,
	}
}

func cartFor(p *domain.Product, snapshot string, quantity int) Cart {
	return Cart{Items: []domain.CartItem{{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     dec(snapshot),
		Quantity:  quantity,
	}}}
}

func TestComputeCheckoutTotal_SingleItem(t *testing.T) {
	p := product("10.00")

	totals, err := ComputeCheckoutTotal(cartFor(p, "10.00", 1), destination(), Catalog{p.ID: p})
	require.NoError(t, err)
	requireMoney(t, "10.00", totals.Subtotal)
	requireMoney(t, "5.00", totals.Shipping)
	requireMoney(t, "2.00", totals.Tax)
	requireMoney(t, "17.00", totals.Total)
	require.Equal(t, "standard", totals.ShippingMethod.ID)
}

func TestQuoteDisplayTotal_SingleItem(t *testing.T) {
	p := product("10.00")

	totals, err := QuoteDisplayTotal(cartFor(p, "10.00", 1), destination(), Catalog{p.ID: p})
	require.NoError(t, err)
	requireMoney(t, "17.00", totals.Total)
}

func TestSnapshotAndRecomputeDiverge(t *testing.T) {
	p := product("10.00")
	p.BulkPricing = tiers()
	cart := cartFor(p, "10.00", 10)
	catalog := Catalog{p.ID: p}

	quote, err := QuoteDisplayTotal(cart, destination(), catalog)
	require.NoError(t, err)
	requireMoney(t, "100.00", quote.Subtotal)

	checkout, err := ComputeCheckoutTotal(cart, destination(), catalog)
	require.NoError(t, err)
	requireMoney(t, "90.00", checkout.Subtotal)
	requireMoney(t, "9.00", checkout.Lines[0].UnitPrice)
	requireMoney(t, "18.00", checkout.Tax)
	requireMoney(t, "113.00", checkout.Total)

	// A later catalog price change does not move the quote.
	p.Price = dec("11.00")
	quote, err = QuoteDisplayTotal(cart, destination(), catalog)
	require.NoError(t, err)
	requireMoney(t, "100.00", quote.Subtotal)
}

func TestComputeCheckoutTotal_DiscountCapsUnitPrice(t *testing.T) {
	p := product("10.00")
	p.BulkPricing = tiers()
	discount := dec("15")
	p.Discount = &discount

	// 10.00 less 15% is 8.50, below the 9.00 tier.
	totals, err := ComputeCheckoutTotal(cartFor(p, "10.00", 10), destination(), Catalog{p.ID: p})
	require.NoError(t, err)
	requireMoney(t, "8.50", totals.Lines[0].UnitPrice)

	// At 50 units the 8.00 tier wins.
	totals, err = ComputeCheckoutTotal(cartFor(p, "10.00", 50), destination(), Catalog{p.ID: p})
	require.NoError(t, err)
	requireMoney(t, "8.00", totals.Lines[0].UnitPrice)
	requireMoney(t, "400.00", totals.Subtotal)
}

func TestQuoteDisplayTotal_RoundsOnlyAtTheSum(t *testing.T) {
	a, b, c := product("1"), product("1"), product("1")
	cart := Cart{Items: []domain.CartItem{
		{ProductID: a.ID, Price: dec("0.335"), Quantity: 1},
		{ProductID: b.ID, Price: dec("0.335"), Quantity: 1},
		{ProductID: c.ID, Price: dec("0.335"), Quantity: 1},
	}}

	totals, err := QuoteDisplayTotal(cart, destination(), Catalog{a.ID: a, b.ID: b, c.ID: c})
	require.NoError(t, err)
	// Per-line rounding would give 1.02.
	requireMoney(t, "1.01", totals.Subtotal)
}

func TestComputeTotals_NoShippingAvailable(t *testing.T) {
	p := product("10.00")
	country := destination()
	country.Shipping.Available = false

	for name, compute := range map[string]func(Cart, domain.Country, Catalog) (*Totals, error){
		"quote":    QuoteDisplayTotal,
		"checkout": ComputeCheckoutTotal,
	} {
		t.Run(name, func(t *testing.T) {
			totals, err := compute(cartFor(p, "10.00", 1), country, Catalog{p.ID: p})
			require.Nil(t, totals)

			var target *apperrors.ErrNoShippingAvailable
			require.True(t, errors.As(err, &target))
			require.Equal(t, "GB", target.CountryCode)
		})
	}
}

func TestComputeTotals_RequestedShippingMethod(t *testing.T) {
	p := product("10.00")
	cart := cartFor(p, "10.00", 1)
	cart.ShippingMethodID = "express"

	totals, err := ComputeCheckoutTotal(cart, destination(), Catalog{p.ID: p})
	require.NoError(t, err)
	requireMoney(t, "12.50", totals.Shipping)
	requireMoney(t, "24.50", totals.Total)

	cart.ShippingMethodID = "drone"
	_, err = ComputeCheckoutTotal(cart, destination(), Catalog{p.ID: p})
	var target *apperrors.ErrNoShippingAvailable
	require.True(t, errors.As(err, &target))
	require.Equal(t, "drone", target.MethodID)
}

func TestComputeCheckoutTotal_RejectsUnsellableLines(t *testing.T) {
	p := product("10.00")

	_, err := ComputeCheckoutTotal(cartFor(p, "10.00", 1), destination(), Catalog{})
	var notFound *apperrors.ErrNotFound
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "product", notFound.Resource)

	p.InStock = false
	_, err = ComputeCheckoutTotal(cartFor(p, "10.00", 1), destination(), Catalog{p.ID: p})
	var outOfStock *apperrors.ErrOutOfStock
	require.True(t, errors.As(err, &outOfStock))

	p.InStock = true
	_, err = ComputeCheckoutTotal(cartFor(p, "10.00", 0), destination(), Catalog{p.ID: p})
	var badQuantity *apperrors.ErrInvalidQuantity
	require.True(t, errors.As(err, &badQuantity))
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	_, err := QuoteDisplayTotal(Cart{}, destination(), Catalog{})
	var target *apperrors.ErrValidation
	require.True(t, errors.As(err, &target))
	require.Equal(t, "items", target.Field)
}
