// Package pricing implements the storefront's money computations: bulk tier
// resolution, VAT, currency conversion, shipping method selection and order
// total assembly. Every function is pure; errors are returned, never logged.
//
// All amounts are base currency unless a function says otherwise.
package pricing

import "github.com/shopspring/decimal"

// Places is the number of decimal places money is rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds an amount to Places using round-half-up. Amounts handled here
// are never negative, so decimal's half-away-from-zero rounding is half-up.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}
