// Package utils provides shared formatting helpers for ReturnSight.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats a dollar amount with thousands grouping ($12,345.67).
// Always renders two decimal places.
func FormatUSD(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	// Round to cents first so the integer and fractional parts can never
	// disagree about carrying.
	cents := int64(math.Round(amount * 100))
	formatted := fmt.Sprintf("%s.%02d", groupThousands(cents/100), cents%100)

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatUSDCompact formats a dollar amount in compact notation.
// e.g., 1250 → "$1.25K", 3400000 → "$3.4M"
func FormatUSDCompact(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	prefix := "$"
	if negative {
		prefix = "-$"
	}

	switch {
	case amount >= 1e9:
		return fmt.Sprintf("%s%sB", prefix, trimZeros(amount/1e9))
	case amount >= 1e6:
		return fmt.Sprintf("%s%sM", prefix, trimZeros(amount/1e6))
	case amount >= 1e3:
		return fmt.Sprintf("%s%sK", prefix, trimZeros(amount/1e3))
	default:
		return fmt.Sprintf("%s%.2f", prefix, amount)
	}
}

// FormatCount formats an integer with thousands grouping (1,500).
func FormatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(int64(-n))
	}
	return groupThousands(int64(n))
}

// FormatPct formats a share as a percentage. e.g., 0.254 → "25.4%"
func FormatPct(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// FormatHour formats an hour of day as a 24h clock label. e.g., 9 → "09:00"
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatDays formats a day count with one decimal. e.g., 10.4 → "10.4 days"
func FormatDays(days float64) string {
	return fmt.Sprintf("%.1f days", days)
}

// groupThousands formats an integer with Western grouping (groups of 3).
func groupThousands(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	result := s[len(s)-3:]
	remaining := s[:len(s)-3]

	for len(remaining) > 0 {
		if len(remaining) > 3 {
			result = remaining[len(remaining)-3:] + "," + result
			remaining = remaining[:len(remaining)-3]
		} else {
			result = remaining + "," + result
			remaining = ""
		}
	}

	return result
}

// trimZeros formats a number with up to 2 decimal places, removing
// trailing zeros.
func trimZeros(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
