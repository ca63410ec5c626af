package campaign

import "time"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusArchived Status = "archived"
)

// Campaign is one media plan for a client: a date range, an MBA (media buying
// authority) number identifying the plan, and the agency fee percentage every
// channel of the plan decomposes budgets with.
type Campaign struct {
	Id         int
	Uid        string
	ClientName string
	Name       string
	MbaNumber  string
	StartDate  time.Time
	EndDate    time.Time
	// FeePercent is the agency fee percentage in [0, 100). 100 is rejected at
	// this boundary: the fee engine divides by (100 - FeePercent).
	FeePercent float64
	Status     Status
}
