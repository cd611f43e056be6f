package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// ResolveUnitPrice returns the unit price for quantity: the price of the tier
// with the greatest threshold not above quantity, or basePrice when no tier
// qualifies. Tiers must be strictly ascending by quantity.
func ResolveUnitPrice(tiers []domain.BulkPricingTier, quantity int, basePrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, &errors.ErrInvalidQuantity{Quantity: quantity}
	}

	price := basePrice
	for i, tier := range tiers {
		// Keep scanning after a match so corrupt data never goes unnoticed.
		if i > 0 && tier.Quantity <= tiers[i-1].Quantity {
			return decimal.Zero, &errors.ErrInvalidTierData{Index: i, Reason: orderingReason(tier, tiers[i-1])}
		}
		if tier.Quantity <= quantity {
			price = tier.Price
		}
	}

	return price, nil
}

// ValidateTiers checks a product's tiers before they are stored: positive
// quantities, strictly ascending, prices between zero and basePrice and never
// increasing with quantity.
func ValidateTiers(tiers []domain.BulkPricingTier, basePrice decimal.Decimal) error {
	for i, tier := range tiers {
		switch {
		case tier.Quantity <= 0:
			return &errors.ErrInvalidTierData{Index: i, Reason: "quantity must be greater than zero"}
		case tier.Price.IsNegative():
			return &errors.ErrInvalidTierData{Index: i, Reason: "price must not be negative"}
		case tier.Price.GreaterThan(basePrice):
			return &errors.ErrInvalidTierData{Index: i, Reason: "price exceeds the product price"}
		}

		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if tier.Quantity <= prev.Quantity {
			return &errors.ErrInvalidTierData{Index: i, Reason: orderingReason(tier, prev)}
		}
		if tier.Price.GreaterThan(prev.Price) {
			return &errors.ErrInvalidTierData{Index: i, Reason: "price must not increase with quantity"}
		}
	}
	return nil
}

func orderingReason(tier, prev domain.BulkPricingTier) string {
	if tier.Quantity == prev.Quantity {
		return "duplicate quantity"
	}
	return "quantities must be strictly ascending"
}
