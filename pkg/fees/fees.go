package fees

import "fmt"

// Policy describes how a line item's entered budget decomposes into media
// cost and agency fee. The two flags are independent; together with the fee
// percentage they select exactly one of four decomposition branches.
type Policy struct {
	// FeePercent is the agency fee percentage for the channel, in [0, 100).
	FeePercent float64
	// BudgetIncludesFees marks the entered budget as gross (fee included).
	BudgetIncludesFees bool
	// ClientPaysForMedia means the client is invoiced for the fee only; the
	// media itself is not billed even though it is delivered.
	ClientPaysForMedia bool
}

// Result is the decomposed view of one burst's budget.
//
// MediaAmount is the billable media cost and may legitimately be 0 when the
// client does not pay for media. DeliveryMediaAmount is the media actually
// delivered to the audience and is never zeroed by the billing flags; delivery
// and billing are deliberately different views of the same burst.
type Result struct {
	MediaAmount         float64
	DeliveryMediaAmount float64
	FeeAmount           float64
	TotalAmount         float64
}

// ValidatePercent rejects fee percentages outside [0, 100). A percentage of
// 100 would divide by zero in the net-budget branches and is a configuration
// error at campaign setup, not something Decompose guards against.
func ValidatePercent(feePercent float64) error {
	if feePercent < 0 || feePercent >= 100 {
		return fmt.Errorf("fee percentage must be in [0, 100), got %v", feePercent)
	}
	return nil
}

// Decompose splits rawBudget into media and fee components under the given
// policy. rawBudget is assumed non-negative and the policy's percentage valid
// (see ValidatePercent); the campaign service enforces both at the boundary.
func Decompose(rawBudget float64, p Policy) Result {
	pct := p.FeePercent

	var r Result
	switch {
	case p.BudgetIncludesFees && p.ClientPaysForMedia:
		r.MediaAmount = 0
		r.FeeAmount = rawBudget * pct / 100
		r.DeliveryMediaAmount = rawBudget * (100 - pct) / 100
	case p.BudgetIncludesFees && !p.ClientPaysForMedia:
		r.MediaAmount = rawBudget * (100 - pct) / 100
		r.FeeAmount = rawBudget * pct / 100
		r.DeliveryMediaAmount = r.MediaAmount
	case !p.BudgetIncludesFees && p.ClientPaysForMedia:
		r.MediaAmount = 0
		r.FeeAmount = rawBudget / (100 - pct) * pct
		r.DeliveryMediaAmount = rawBudget
	default:
		r.MediaAmount = rawBudget
		r.FeeAmount = rawBudget * pct / (100 - pct)
		r.DeliveryMediaAmount = rawBudget
	}
	r.TotalAmount = r.MediaAmount + r.FeeAmount
	return r
}
