package types

import (
	"github.com/shopspring/decimal"
)

// All monetary arithmetic in the storefront happens in kobo (the smallest
// naira subdivision) on plain integers. Decimal conversion exists only at
// the display boundary.

const koboPerNaira = 100

var nairaFactor = decimal.NewFromInt(koboPerNaira)

// Naira converts a kobo amount into its decimal naira representation.
func Naira(kobo int64) decimal.Decimal {
	return decimal.NewFromInt(kobo).Div(nairaFactor)
}

// FormatNaira renders a kobo amount as a display string, e.g. "₦3,000" or
// "₦1,234.50". Whole-naira amounts drop the fractional digits.
func FormatNaira(kobo int64) string {
	amount := Naira(kobo)
	places := int32(2)
	if amount.IsInteger() {
		places = 0
	}
	return "₦" + groupThousands(amount.StringFixed(places))
}

func groupThousands(raw string) string {
	intPart := raw
	fracPart := ""
	for i := 0; i < len(raw); i++ {
		if raw[i] == '.' {
			intPart, fracPart = raw[:i], raw[i:]
			break
		}
	}

	sign := ""
	if len(intPart) > 0 && intPart[0] == '-' {
		sign, intPart = "-", intPart[1:]
	}

	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}

	var out []byte
	lead := n % 3
	if lead > 0 {
		out = append(out, intPart[:lead]...)
	}
	for i := lead; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
