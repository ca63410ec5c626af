package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatCurrency renders an amount as "$1,234.56". Negative amounts keep the
// sign before the dollar symbol.
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	v = Round2(v)
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents)
}

// FormatPercent renders a percentage with up to 2 decimal places and no
// trailing zeros, e.g. "12.5%".
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(Round2(v), 'f', -1, 64)
	return s + "%"
}

// DateOnly truncates a timestamp to midnight in its own location. All burst
// and campaign dates are calendar dates with no time component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (exclusive of b).
// Returns a negative count when b is before a.
func DaysBetween(a, b time.Time) int {
	a = DateOnly(a)
	b = DateOnly(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
