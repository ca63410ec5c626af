package lineitem

import (
	"encoding/json"
	"time"

	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/deliverables"
	"github.com/mediaplan/mediaplan/pkg/fees"
	log "github.com/sirupsen/logrus"
)

// Burst is a contiguous date range within a line item carrying its own budget
// and buy metric. Dates are inclusive calendar dates with no time component.
type Burst struct {
	StartDate time.Time
	EndDate   time.Time
	// Budget is the raw entered budget after tolerant parsing.
	Budget    float64
	BuyAmount float64
	// CalculatedValue is the cached deliverable count. For bonus bursts it is
	// the manually entered count, not a derived number.
	CalculatedValue float64
	FeeOverride     float64
}

type burstJSON struct {
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Budget          float64 `json:"budget"`
	BuyAmount       float64 `json:"buyAmount"`
	CalculatedValue float64 `json:"calculatedValue"`
	FeeOverride     float64 `json:"feeOverride,omitempty"`
}

func (b Burst) MarshalJSON() ([]byte, error) {
	return json.Marshal(burstJSON{
		StartDate:       b.StartDate.Format("2006-01-02"),
		EndDate:         b.EndDate.Format("2006-01-02"),
		Budget:          b.Budget,
		BuyAmount:       b.BuyAmount,
		CalculatedValue: b.CalculatedValue,
		FeeOverride:     b.FeeOverride,
	})
}

func (b *Burst) UnmarshalJSON(data []byte) error {
	var dto burstJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	b.StartDate = parseDate(dto.StartDate)
	b.EndDate = parseDate(dto.EndDate)
	b.Budget = dto.Budget
	b.BuyAmount = dto.BuyAmount
	b.CalculatedValue = dto.CalculatedValue
	b.FeeOverride = dto.FeeOverride
	return nil
}

// parseDate accepts the stored "2006-01-02" form as well as full RFC 3339
// timestamps from older records. Unparsable dates yield the zero time.
func parseDate(raw string) time.Time {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return utils.DateOnly(t)
	}
	return time.Time{}
}

// LineItem is one buyable unit within a channel, composed of one or more
// bursts. Which of the descriptive fields are meaningful depends on the
// channel; unused fields stay empty.
type LineItem struct {
	Id          int
	CampaignUid string
	Channel     channel.Channel

	Market      string
	Network     string
	Station     string
	Daypart     string
	Placement   string
	Size        string
	Platform    string
	Site        string
	BidStrategy string
	Targeting   string
	Creative    string
	BuyingDemo  string

	BuyType deliverables.BuyType

	BudgetIncludesFees bool
	ClientPaysForMedia bool
	FixedCostMedia     bool
	NoAdserving        bool

	Bursts   []Burst
	Position int
}

// Field returns the value of a descriptive field by its persisted name.
// Unknown fields resolve to the empty string, which is exactly what the
// grouping key join expects for fields a channel does not use.
func (li LineItem) Field(name string) string {
	switch name {
	case "market":
		return li.Market
	case "network":
		return li.Network
	case "station":
		return li.Station
	case "daypart":
		return li.Daypart
	case "placement":
		return li.Placement
	case "size":
		return li.Size
	case "platform":
		return li.Platform
	case "site":
		return li.Site
	case "bid_strategy":
		return li.BidStrategy
	case "targeting":
		return li.Targeting
	case "creative":
		return li.Creative
	case "buying_demo":
		return li.BuyingDemo
	case "buy_type":
		return string(li.BuyType)
	default:
		return ""
	}
}

// Policy returns the fee policy for this line item under the campaign's fee
// percentage. A positive per-burst FeeOverride takes precedence when supplied
// by the caller.
func (li LineItem) Policy(feePercent float64) fees.Policy {
	return fees.Policy{
		FeePercent:         feePercent,
		BudgetIncludesFees: li.BudgetIncludesFees,
		ClientPaysForMedia: li.ClientPaysForMedia,
	}
}

// Recalculate refreshes every burst's derived state: dates are truncated to
// calendar days, bonus bursts have budget and buy amount forced to zero, and
// the cached deliverable count is recomputed. Bonus overrides are preserved,
// never derived.
func (li *LineItem) Recalculate() {
	for i := range li.Bursts {
		b := &li.Bursts[i]
		b.StartDate = utils.DateOnly(b.StartDate)
		b.EndDate = utils.DateOnly(b.EndDate)
		if li.BuyType == deliverables.BuyTypeBonus {
			b.Budget = 0
			b.BuyAmount = 0
			// CalculatedValue is the user-entered bonus count; keep it.
			continue
		}
		b.CalculatedValue = deliverables.Calculate(li.BuyType, b.Budget, b.BuyAmount, 0, b.CalculatedValue)
	}
}

// BillingBursts decomposes each burst into its billing view under the
// campaign's fee percentage, tagged with the line item's channel.
func (li LineItem) BillingBursts(feePercent float64) []fees.BillingBurst {
	policy := li.Policy(feePercent)
	bursts := make([]fees.BillingBurst, 0, len(li.Bursts))
	for _, b := range li.Bursts {
		p := policy
		if b.FeeOverride > 0 {
			p.FeePercent = b.FeeOverride
		}
		bursts = append(bursts, fees.NewBillingBurst(
			b.StartDate, b.EndDate, b.Budget, b.CalculatedValue, string(li.BuyType), string(li.Channel), p,
		))
	}
	return bursts
}

// decodeBursts parses the persisted bursts column. The column historically
// holds a JSON array, but empty strings and malformed payloads exist in the
// wild; both decode to "no bursts" rather than failing the whole record load.
func decodeBursts(raw string) []Burst {
	if raw == "" {
		return nil
	}
	var bursts []Burst
	if err := json.Unmarshal([]byte(raw), &bursts); err != nil {
		log.Warnf("ignoring unparsable bursts payload: %v", err)
		return nil
	}
	return bursts
}

func encodeBursts(bursts []Burst) string {
	if len(bursts) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(bursts)
	if err != nil {
		// Bursts are plain values; marshalling cannot realistically fail.
		log.Errorf("failed to encode bursts: %v", err)
		return "[]"
	}
	return string(encoded)
}
