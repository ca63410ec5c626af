package deliverables

import (
	"regexp"
	"strconv"
)

// BuyType is the pricing model of a line item. It determines how the number of
// deliverables (impressions, clicks, spots, screens...) is derived from a
// burst's budget and buy amount.
type BuyType string

const (
	BuyTypeCPM        BuyType = "cpm"
	BuyTypeCPC        BuyType = "cpc"
	BuyTypeCPV        BuyType = "cpv"
	BuyTypeSpots      BuyType = "spots"
	BuyTypeScreens    BuyType = "screens"
	BuyTypeInsertions BuyType = "insertions"
	BuyTypeFixedCost  BuyType = "fixed_cost"
	BuyTypePackage    BuyType = "package"
	BuyTypeBonus      BuyType = "bonus"
)

var amountCleaner = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount parses a free-text money or number input, tolerating currency
// symbols, thousand separators and surrounding noise. Unparsable input yields
// 0 rather than an error: the caller is usually reacting to a half-typed form
// value.
func ParseAmount(raw string) float64 {
	cleaned := amountCleaner.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// Calculate derives the deliverable count for a burst.
//
// For bonus bursts the count is the manually entered override, not a derived
// number; callers must never overwrite it from budget math. For an
// unrecognized buy type the previously cached value is passed through so that
// a transiently unselected buy type does not zero out user data.
func Calculate(buyType BuyType, budget, buyAmount, override, cached float64) float64 {
	switch buyType {
	case BuyTypeCPM:
		if buyAmount == 0 {
			return 0
		}
		return budget / buyAmount * 1000
	case BuyTypeCPC, BuyTypeCPV, BuyTypeSpots, BuyTypeScreens, BuyTypeInsertions:
		if buyAmount == 0 {
			return 0
		}
		return budget / buyAmount
	case BuyTypeFixedCost, BuyTypePackage:
		// A single billable unit regardless of budget.
		return 1
	case BuyTypeBonus:
		return override
	default:
		return cached
	}
}
