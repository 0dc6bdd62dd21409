package format

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{8.5, "8.50%"},
		{0, "0.00%"},
		{12.345, "12.35%"},
		{1234.56, "1234.56%"},
	}
	for _, tc := range tests {
		if got := Percent(tc.input); got != tc.expected {
			t.Errorf("Percent(%v) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1.05, "1.05"},
		{0.9, "0.90"},
		{1, "1.00"},
	}
	for _, tc := range tests {
		if got := Ratio(tc.input); got != tc.expected {
			t.Errorf("Ratio(%v) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{105.5, "R$ 105.50"},
		{160, "R$ 160.00"},
		{0.99, "R$ 0.99"},
	}
	for _, tc := range tests {
		if got := Currency(tc.input); got != tc.expected {
			t.Errorf("Currency(%v) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestGroupedCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{125000, "R$ 125,000"},
		{1234567.8, "R$ 1,234,568"},
		{12345678, "R$ 12,345,678"},
		{999, "R$ 999"},
		{0, "R$ 0"},
	}
	for _, tc := range tests {
		if got := GroupedCurrency(tc.input); got != tc.expected {
			t.Errorf("GroupedCurrency(%v) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
