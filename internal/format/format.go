package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EUR formats a price the way the storefront shows it: two decimals, a comma
// as decimal separator, dots between thousands and a trailing euro sign.
// Example: EUR(1234.5) => "1.234,50 €"
func EUR(price float64) string {
	return EURDecimal(decimal.NewFromFloat(price))
}

func EURDecimal(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	out := thousandSep(whole) + "," + frac + " €"
	if neg && !d.Round(2).IsZero() {
		return "-" + out
	}
	return out
}

func thousandSep(s string) string {
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}
