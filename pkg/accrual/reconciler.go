package accrual

import (
	"sort"

	"github.com/mediaplan/mediaplan/internal/utils"
)

// Version is one plan version under reconciliation: its identity plus the
// delivery and billing schedule payloads as decoded JSON.
type Version struct {
	ClientName    string
	CampaignName  string
	MbaNumber     string
	VersionNumber int

	DeliverySchedule any
	BillingSchedule  any
}

// Row is the reconciled delivery-vs-billing variance for one line item in one
// plan version, aggregated over the selected months.
type Row struct {
	ClientName    string `json:"clientName"`
	CampaignName  string `json:"campaignName"`
	MbaNumber     string `json:"mbaNumber"`
	VersionNumber int    `json:"versionNumber"`
	LineItemKey   string `json:"lineItemKey"`
	LineItemName  string `json:"lineItemName"`

	DeliveryAmount float64 `json:"deliveryAmount"`
	BillingAmount  float64 `json:"billingAmount"`
	Difference     float64 `json:"difference"`
}

type rowKey struct {
	mbaNumber     string
	versionNumber int
	lineItemKey   string
}

// Reconcile merges each version's delivery and billing schedules into
// variance rows per (mba number, version, line item), summed over the
// selected months.
//
// Delivery amounts for a line item whose clientPaysForMedia flag is set are
// excluded: its billed media is legitimately zero and must not show as a
// variance. Billing amounts are never excluded. All sums are rounded to two
// decimal places.
func Reconcile(versions []Version, selectedMonths []MonthKey, clientPays map[string]bool) []Row {
	selected := make(map[MonthKey]bool, len(selectedMonths))
	for _, m := range selectedMonths {
		selected[m] = true
	}

	rows := make(map[rowKey]*Row)
	for _, v := range versions {
		for _, line := range Flatten(v.DeliverySchedule) {
			if !selected[line.Month] {
				continue
			}
			row := ensureRow(rows, v, line)
			if clientPays[line.Key] {
				continue
			}
			row.DeliveryAmount += line.Amount
		}
		for _, line := range Flatten(v.BillingSchedule) {
			if !selected[line.Month] {
				continue
			}
			row := ensureRow(rows, v, line)
			row.BillingAmount += line.Amount
		}
	}

	result := make([]Row, 0, len(rows))
	for _, row := range rows {
		row.DeliveryAmount = utils.Round2(row.DeliveryAmount)
		row.BillingAmount = utils.Round2(row.BillingAmount)
		row.Difference = utils.Round2(row.DeliveryAmount - row.BillingAmount)
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.MbaNumber != b.MbaNumber {
			return a.MbaNumber < b.MbaNumber
		}
		if a.VersionNumber != b.VersionNumber {
			return a.VersionNumber < b.VersionNumber
		}
		return a.LineItemKey < b.LineItemKey
	})
	return result
}

func ensureRow(rows map[rowKey]*Row, v Version, line ScheduleLine) *Row {
	key := rowKey{mbaNumber: v.MbaNumber, versionNumber: v.VersionNumber, lineItemKey: line.Key}
	row, ok := rows[key]
	if !ok {
		row = &Row{
			ClientName:    v.ClientName,
			CampaignName:  v.CampaignName,
			MbaNumber:     v.MbaNumber,
			VersionNumber: v.VersionNumber,
			LineItemKey:   line.Key,
			LineItemName:  line.Name,
		}
		rows[key] = row
	}
	if row.LineItemName == "" {
		row.LineItemName = line.Name
	}
	return row
}
