package enums

import "fmt"

// CheckoutMode selects the active item source for a checkout session.
type CheckoutMode string

const (
	CheckoutModeCart   CheckoutMode = "cart"
	CheckoutModeBuyNow CheckoutMode = "buynow"
)

var validCheckoutModes = []CheckoutMode{
	CheckoutModeCart,
	CheckoutModeBuyNow,
}

// String implements fmt.Stringer.
func (c CheckoutMode) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutMode.
func (c CheckoutMode) IsValid() bool {
	for _, candidate := range validCheckoutModes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutMode converts raw input into a CheckoutMode.
func ParseCheckoutMode(value string) (CheckoutMode, error) {
	if value == "" {
		return CheckoutModeCart, nil
	}
	for _, candidate := range validCheckoutModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout mode %q", value)
}
