package cashflow

import (
	"sort"
	"time"

	"github.com/mediaplan/mediaplan/internal/utils"
)

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// Allocation is one month's share of a burst's total investment.
type Allocation struct {
	Month  MonthKey
	Amount float64
}

// Prorate splits totalInvestment across the calendar months touched by the
// inclusive [start, end] range, weighted by the number of days falling in
// each month. The allocations are ordered chronologically and sum to
// totalInvestment (within floating point tolerance). A single-day burst
// allocates the full amount to that day's month.
func Prorate(start, end time.Time, totalInvestment float64) []Allocation {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)
	if end.Before(start) {
		return nil
	}

	totalDays := utils.DaysBetween(start, end) + 1

	var allocations []Allocation
	cursor := start
	for !cursor.After(end) {
		monthEnd := lastDayOfMonth(cursor)
		segmentEnd := monthEnd
		if end.Before(monthEnd) {
			segmentEnd = end
		}
		days := utils.DaysBetween(cursor, segmentEnd) + 1
		allocations = append(allocations, Allocation{
			Month:  Key(cursor),
			Amount: totalInvestment * float64(days) / float64(totalDays),
		})
		cursor = monthEnd.AddDate(0, 0, 1)
	}
	return allocations
}

// Accumulate merges allocations from multiple bursts additively per month and
// returns the merged list in chronological order.
func Accumulate(allocations ...[]Allocation) []Allocation {
	byMonth := make(map[MonthKey]float64)
	for _, list := range allocations {
		for _, a := range list {
			byMonth[a.Month] += a.Amount
		}
	}
	merged := make([]Allocation, 0, len(byMonth))
	for month, amount := range byMonth {
		merged = append(merged, Allocation{Month: month, Amount: amount})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Month < merged[j].Month })
	return merged
}

// Key returns the month key for a date.
func Key(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// Label renders a month key as a human-readable "January 2006" label. An
// unparsable key is returned as-is.
func Label(key MonthKey) string {
	t, err := time.Parse("2006-01", string(key))
	if err != nil {
		return string(key)
	}
	return t.Format("January 2006")
}

func lastDayOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
