package pricing

import "github.com/shopspring/decimal"

// ApplyVAT returns the VAT due on taxableAmount at vatPercent, rounded to
// Places. Deciding what is taxable is the caller's job.
func ApplyVAT(taxableAmount, vatPercent decimal.Decimal) decimal.Decimal {
	return Round(taxableAmount.Mul(vatPercent).Div(hundred))
}
