package types

import "testing"

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		kobo int64
		want string
	}{
		{0, "₦0"},
		{300000, "₦3,000"},
		{500000, "₦5,000"},
		{800000, "₦8,000"},
		{14500000, "₦145,000"},
		{123450, "₦1,234.50"},
		{99, "₦0.99"},
		{-300000, "₦-3,000"},
	}

	for _, tt := range tests {
		if got := FormatNaira(tt.kobo); got != tt.want {
			t.Fatalf("FormatNaira(%d) = %q, want %q", tt.kobo, got, tt.want)
		}
	}
}

func TestNaira(t *testing.T) {
	if got := Naira(150); got.String() != "1.5" {
		t.Fatalf("Naira(150) = %s, want 1.5", got)
	}
}
