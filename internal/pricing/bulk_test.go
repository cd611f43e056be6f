package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storefront/internal/domain"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

func tiers() []domain.BulkPricingTier {
	return []domain.BulkPricingTier{
		{Quantity: 10, Price: dec("9.00")},
		{Quantity: 50, Price: dec("8.00")},
	}
}

func TestResolveUnitPrice_TierBoundaries(t *testing.T) {
	cases := []struct {
		quantity int
		want     string
	}{
		{1, "10.00"},
		{9, "10.00"},
		{10, "9.00"},
		{49, "9.00"},
		{50, "8.00"},
		{1000, "8.00"},
	}

	for _, tc := range cases {
		got, err := ResolveUnitPrice(tiers(), tc.quantity, dec("10.00"))
		require.NoError(t, err)
		requireMoney(t, tc.want, got)
	}
}

func TestResolveUnitPrice_NoTiersReturnsBase(t *testing.T) {
	got, err := ResolveUnitPrice(nil, 500, dec("12.34"))
	require.NoError(t, err)
	requireMoney(t, "12.34", got)
}

func TestResolveUnitPrice_InvalidQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		_, err := ResolveUnitPrice(tiers(), q, dec("10.00"))

		var target *apperrors.ErrInvalidQuantity
		require.True(t, errors.As(err, &target))
		require.Equal(t, q, target.Quantity)
	}
}

func TestResolveUnitPrice_RejectsCorruptTiers(t *testing.T) {
	duplicate := []domain.BulkPricingTier{
		{Quantity: 10, Price: dec("9.00")},
		{Quantity: 10, Price: dec("8.00")},
	}
	_, err := ResolveUnitPrice(duplicate, 20, dec("10.00"))
	var target *apperrors.ErrInvalidTierData
	require.True(t, errors.As(err, &target))
	require.Equal(t, 1, target.Index)
	require.Equal(t, "duplicate quantity", target.Reason)

	// A quantity below every tier must still surface the corruption.
	unsorted := []domain.BulkPricingTier{
		{Quantity: 50, Price: dec("8.00")},
		{Quantity: 10, Price: dec("9.00")},
	}
	_, err = ResolveUnitPrice(unsorted, 1, dec("10.00"))
	require.True(t, errors.As(err, &target))
}

func TestResolveUnitPrice_Monotonic(t *testing.T) {
	prev, err := ResolveUnitPrice(tiers(), 1, dec("10.00"))
	require.NoError(t, err)

	for q := 2; q <= 120; q++ {
		got, err := ResolveUnitPrice(tiers(), q, dec("10.00"))
		require.NoError(t, err)
		require.Truef(t, got.LessThanOrEqual(prev), "price rose at quantity %d", q)
		prev = got
	}
}

func TestValidateTiers(t *testing.T) {
	require.NoError(t, ValidateTiers(tiers(), dec("10.00")))
	require.NoError(t, ValidateTiers(nil, dec("10.00")))

	cases := []struct {
		name   string
		tiers  []domain.BulkPricingTier
		reason string
	}{
		{
			name:   "zero quantity",
			tiers:  []domain.BulkPricingTier{{Quantity: 0, Price: dec("9")}},
			reason: "quantity must be greater than zero",
		},
		{
			name:   "negative price",
			tiers:  []domain.BulkPricingTier{{Quantity: 5, Price: dec("-1")}},
			reason: "price must not be negative",
		},
		{
			name:   "above base price",
			tiers:  []domain.BulkPricingTier{{Quantity: 5, Price: dec("10.01")}},
			reason: "price exceeds the product price",
		},
		{
			name: "duplicate quantity",
			tiers: []domain.BulkPricingTier{
				{Quantity: 5, Price: dec("9")},
				{Quantity: 5, Price: dec("8")},
			},
			reason: "duplicate quantity",
		},
		{
			name: "descending quantity",
			tiers: []domain.BulkPricingTier{
				{Quantity: 50, Price: dec("9")},
				{Quantity: 10, Price: dec("8")},
			},
			reason: "quantities must be strictly ascending",
		},
		{
			name: "price increases",
			tiers: []domain.BulkPricingTier{
				{Quantity: 10, Price: dec("8")},
				{Quantity: 50, Price: dec("9")},
			},
			reason: "price must not increase with quantity",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTiers(tc.tiers, dec("10.00"))

			var target *apperrors.ErrInvalidTierData
			require.True(t, errors.As(err, &target))
			require.Equal(t, tc.reason, target.Reason)
		})
	}
}
