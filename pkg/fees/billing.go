package fees

import "time"

// BillingBurst is the per-burst output consumed by the billing schedule
// builder: the burst's date range plus its full fee decomposition and the
// policy context it was computed under.
type BillingBurst struct {
	StartDate           time.Time
	EndDate             time.Time
	MediaAmount         float64
	DeliveryMediaAmount float64
	FeeAmount           float64
	TotalAmount         float64
	MediaType           string
	FeePercentage       float64
	BudgetIncludesFees  bool
	ClientPaysForMedia  bool
	Deliverables        float64
	BuyType             string
}

// NewBillingBurst decomposes a single burst under the given policy and tags
// the result with its media type.
func NewBillingBurst(start, end time.Time, budget, deliverables float64, buyType string, mediaType string, p Policy) BillingBurst {
	r := Decompose(budget, p)
	return BillingBurst{
		StartDate:           start,
		EndDate:             end,
		MediaAmount:         r.MediaAmount,
		DeliveryMediaAmount: r.DeliveryMediaAmount,
		FeeAmount:           r.FeeAmount,
		TotalAmount:         r.TotalAmount,
		MediaType:           mediaType,
		FeePercentage:       p.FeePercent,
		BudgetIncludesFees:  p.BudgetIncludesFees,
		ClientPaysForMedia:  p.ClientPaysForMedia,
		Deliverables:        deliverables,
		BuyType:             buyType,
	}
}
