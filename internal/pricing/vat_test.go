package pricing

import (
	"testing"
)

func TestApplyVAT(t *testing.T) {
	requireMoney(t, "20.00", ApplyVAT(dec("100"), dec("20")))
	requireMoney(t, "1.91", ApplyVAT(dec("10.05"), dec("19")))
	// 0.625 * 20% = 0.125, rounded half up.
	requireMoney(t, "0.13", ApplyVAT(dec("0.625"), dec("20")))
}

func TestApplyVAT_ZeroRate(t *testing.T) {
	for _, amount := range []string{"0", "0.01", "17.5", "99999.99"} {
		requireMoney(t, "0", ApplyVAT(dec(amount), dec("0")))
	}
}
