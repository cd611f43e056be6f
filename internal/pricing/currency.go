package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Convert renders a base currency amount in a currency whose rate is target
// units per one base unit. The result is for display and is never persisted.
func Convert(amountBase, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, &errors.ErrInvalidRate{Rate: rate}
	}
	return Round(amountBase.Mul(rate)), nil
}

// DisplayTotals are order totals converted into a destination currency.
type DisplayTotals struct {
	CurrencyCode string          `json:"currency_code"`
	Symbol       string          `json:"symbol"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// Display converts each figure of totals into currency. Figures are converted
// independently, so the displayed total may differ from the sum of the
// displayed parts by a rounding unit.
func Display(totals *Totals, currency domain.Currency) (*DisplayTotals, error) {
	out := &DisplayTotals{CurrencyCode: currency.Code, Symbol: currency.Symbol}

	fields := []struct {
		from decimal.Decimal
		to   *decimal.Decimal
	}{
		{totals.Subtotal, &out.Subtotal},
		{totals.Shipping, &out.Shipping},
		{totals.Tax, &out.Tax},
		{totals.Total, &out.Total},
	}
	for _, f := range fields {
		converted, err := Convert(f.from, currency.Rate)
		if err != nil {
			return nil, err
		}
		*f.to = converted
	}

	return out, nil
}
