package computemonth

import (
	"fmt"
	"strconv"
)

// FormatNumber prints n with a K/M/B suffix and two decimals.
func FormatNumber(n float64) string {
	return suffixed(n, 2, "")
}

// FormatCurrency is FormatNumber prefixed by a dollar sign.
func FormatCurrency(n float64) string {
	return suffixed(n, 2, "$")
}

// FormatPercentage prints n followed by a percent sign.
func FormatPercentage(n float64, decimals int) string {
	return strconv.FormatFloat(n, 'f', decimals, 64) + "%"
}

func suffixed(n float64, decimals int, prefix string) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%s%.*fB", prefix, decimals, n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%s%.*fM", prefix, decimals, n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%s%.*fK", prefix, decimals, n/1e3)
	}
	return fmt.Sprintf("%s%.*f", prefix, decimals, n)
}
