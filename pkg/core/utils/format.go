// Package utils holds small formatting helpers shared across the report
// pipeline.
package utils

import "fmt"

// GroupDigits formats an integer with thousands separators ("1,234,567").
func GroupDigits(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
