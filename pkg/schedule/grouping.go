package schedule

import (
	"strings"
	"time"

	"github.com/mediaplan/mediaplan/pkg/fees"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
)

// GroupedLineItem is one row of the schedule export: all line items sharing
// the channel's grouping key, merged. It aggregates the contributing bursts,
// their totals, and the union of their date ranges.
type GroupedLineItem struct {
	Key  string
	Item lineitem.LineItem // descriptive fields seeded from the first record

	Bursts                      []lineitem.Burst
	DeliverablesAmount          float64
	GrossMedia                  float64
	TotalCalculatedDeliverables float64

	GroupStartDate time.Time
	GroupEndDate   time.Time
}

const keySeparator = "|"

// Group merges line items sharing a composite key built from the given field
// names (missing fields contribute empty strings). Output order follows first
// occurrence in the input. Aggregates are conserved: summing any total over
// the groups equals summing it over the ungrouped input, and every input
// burst lands in exactly one group.
func Group(items []lineitem.LineItem, keyFields []string, feePercent float64) []GroupedLineItem {
	var groups []GroupedLineItem
	indexByKey := map[string]int{}

	for _, item := range items {
		key := groupingKey(item, keyFields)
		idx, exists := indexByKey[key]
		if !exists {
			idx = len(groups)
			indexByKey[key] = idx
			groups = append(groups, GroupedLineItem{Key: key, Item: item})
		}
		group := &groups[idx]

		policy := item.Policy(feePercent)
		for _, b := range item.Bursts {
			p := policy
			if b.FeeOverride > 0 {
				p.FeePercent = b.FeeOverride
			}
			group.Bursts = append(group.Bursts, b)
			group.DeliverablesAmount += b.Budget
			group.GrossMedia += fees.Decompose(b.Budget, p).MediaAmount
			group.TotalCalculatedDeliverables += b.CalculatedValue

			if group.GroupStartDate.IsZero() || b.StartDate.Before(group.GroupStartDate) {
				group.GroupStartDate = b.StartDate
			}
			if group.GroupEndDate.IsZero() || b.EndDate.After(group.GroupEndDate) {
				group.GroupEndDate = b.EndDate
			}
		}
	}
	return groups
}

func groupingKey(item lineitem.LineItem, keyFields []string) string {
	parts := make([]string, 0, len(keyFields))
	for _, field := range keyFields {
		parts = append(parts, item.Field(field))
	}
	return strings.Join(parts, keySeparator)
}
