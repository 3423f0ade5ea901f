package report

import (
	"fmt"
	"strconv"
)

// formatFloat formats rates and averages with exactly 2 decimal places so
// that values like 1.6 render as 1.60 in every section.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatSeconds formats engagement times with 1 decimal place
func formatSeconds(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

// formatInt formats an integer count
func formatInt(i int) string {
	return strconv.Itoa(i)
}
