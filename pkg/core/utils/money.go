package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPct renders a percentage with an explicit sign ("+3.42%"), or
// "N/A" when the value is absent. Absent values must stay visible so
// missing data is never masked downstream.
func FormatPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// FormatWon renders a won amount with thousands separators ("70,000원").
func FormatWon(v int64) string {
	return GroupDigits(v) + "원"
}

// FormatWonScaled renders a market-cap-sized amount with magnitude words:
// 조원 above 10^12, 억원 above 10^8, plain won below.
func FormatWonScaled(v *int64) string {
	if v == nil {
		return "N/A"
	}
	switch {
	case *v >= 1_000_000_000_000:
		return fmt.Sprintf("%.1f조원", float64(*v)/1e12)
	case *v >= 100_000_000:
		return fmt.Sprintf("%.0f억원", float64(*v)/1e8)
	default:
		return FormatWon(*v)
	}
}

// FormatRatio renders a ratio metric (PER/PBR/ROE) with its natural
// precision, always keeping at least one decimal ("700.0", "12.34"), or
// "N/A" when absent.
func FormatRatio(v *float64) string {
	if v == nil {
		return "N/A"
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatCount renders a per-share metric (EPS/BPS) as a whole number, or
// "N/A" when absent.
func FormatCount(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatInt(int64(*v), 10)
}
