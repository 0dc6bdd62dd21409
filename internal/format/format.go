// Package format renders pipeline values for display. The output shapes
// are a compatibility contract with existing consumers and must not change.
package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Percent renders a percentage with two decimals: 8.5 -> "8.50%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Ratio renders a plain ratio with two decimals: 1.05 -> "1.05".
func Ratio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Currency renders a BRL amount with two decimals: 105.5 -> "R$ 105.50".
func Currency(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// GroupedCurrency renders a BRL amount with thousands grouping and no
// decimals: 1234567.8 -> "R$ 1,234,568". Used for liquidity and market
// value.
func GroupedCurrency(v float64) string {
	// Round before grouping; ties go to even, matching how the reference
	// renderer rounds to zero decimals.
	return "R$ " + humanize.Commaf(math.RoundToEven(v))
}
