package schedule

import (
	"math"
	"testing"
	"time"

	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/fees"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func tvItem(market, network, station string, bursts ...lineitem.Burst) lineitem.LineItem {
	return lineitem.LineItem{
		CampaignUid: "c-1",
		Channel:     channel.Television,
		Market:      market,
		Network:     network,
		Station:     station,
		BuyType:     "spots",
		Bursts:      bursts,
	}
}

func TestGroupMergesIdenticalKeys(t *testing.T) {
	items := []lineitem.LineItem{
		tvItem("Sydney", "Seven", "ATN",
			lineitem.Burst{StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 12), Budget: 100, CalculatedValue: 10}),
		tvItem("Sydney", "Seven", "ATN",
			lineitem.Burst{StartDate: date(2025, 2, 3), EndDate: date(2025, 2, 9), Budget: 200, CalculatedValue: 20}),
	}

	groups := Group(items, channel.GroupingFields(channel.Television), 10)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if len(g.Bursts) != 2 {
		t.Errorf("expected 2 bursts in group, got %d", len(g.Bursts))
	}
	if g.DeliverablesAmount != 300 {
		t.Errorf("expected deliverablesAmount 300, got %v", g.DeliverablesAmount)
	}
	if g.TotalCalculatedDeliverables != 30 {
		t.Errorf("expected 30 total deliverables, got %v", g.TotalCalculatedDeliverables)
	}
	if !g.GroupStartDate.Equal(date(2025, 1, 6)) || !g.GroupEndDate.Equal(date(2025, 2, 9)) {
		t.Errorf("expected group range 2025-01-06..2025-02-09, got %s..%s",
			g.GroupStartDate.Format("2006-01-02"), g.GroupEndDate.Format("2006-01-02"))
	}
}

func TestGroupKeepsDistinctKeysApart(t *testing.T) {
	items := []lineitem.LineItem{
		tvItem("Sydney", "Seven", "ATN",
			lineitem.Burst{StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 12), Budget: 100}),
		tvItem("Melbourne", "Seven", "HSV",
			lineitem.Burst{StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 12), Budget: 50}),
	}

	groups := Group(items, channel.GroupingFields(channel.Television), 10)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key == groups[1].Key {
		t.Errorf("distinct market/station should produce distinct keys, both got %q", groups[0].Key)
	}
	// first-occurrence order
	if groups[0].Item.Market != "Sydney" || groups[1].Item.Market != "Melbourne" {
		t.Errorf("group order should follow input order, got %q then %q",
			groups[0].Item.Market, groups[1].Item.Market)
	}
}

func TestGroupConservesTotals(t *testing.T) {
	items := []lineitem.LineItem{
		tvItem("Sydney", "Seven", "ATN",
			lineitem.Burst{StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 12), Budget: 120.50, CalculatedValue: 12},
			lineitem.Burst{StartDate: date(2025, 1, 13), EndDate: date(2025, 1, 19), Budget: 79.50, CalculatedValue: 8}),
		tvItem("Sydney", "Nine", "TCN",
			lineitem.Burst{StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 12), Budget: 300, CalculatedValue: 30}),
		tvItem("Sydney", "Seven", "ATN",
			lineitem.Burst{StartDate: date(2025, 2, 3), EndDate: date(2025, 2, 9), Budget: 55.25, CalculatedValue: 5}),
	}

	const feePercent = 12.5
	var wantBudget, wantDeliverables, wantGrossMedia float64
	var wantBursts int
	for _, item := range items {
		policy := item.Policy(feePercent)
		for _, b := range item.Bursts {
			wantBudget += b.Budget
			wantDeliverables += b.CalculatedValue
			wantGrossMedia += fees.Decompose(b.Budget, policy).MediaAmount
			wantBursts++
		}
	}

	groups := Group(items, channel.GroupingFields(channel.Television), feePercent)

	var gotBudget, gotDeliverables, gotGrossMedia float64
	var gotBursts int
	for _, g := range groups {
		gotBudget += g.DeliverablesAmount
		gotDeliverables += g.TotalCalculatedDeliverables
		gotGrossMedia += g.GrossMedia
		gotBursts += len(g.Bursts)
	}
	if math.Abs(gotBudget-wantBudget) > 1e-9 {
		t.Errorf("budget not conserved: want %v, got %v", wantBudget, gotBudget)
	}
	if math.Abs(gotGrossMedia-wantGrossMedia) > 1e-9 {
		t.Errorf("gross media not conserved: want %v, got %v", wantGrossMedia, gotGrossMedia)
	}
	if math.Abs(gotDeliverables-wantDeliverables) > 1e-9 {
		t.Errorf("deliverables not conserved: want %v, got %v", wantDeliverables, gotDeliverables)
	}
	if gotBursts != wantBursts {
		t.Errorf("every burst should land in exactly one group: want %d, got %d", wantBursts, gotBursts)
	}
}

func TestGroupMissingFieldsContributeEmptyStrings(t *testing.T) {
	item := tvItem("", "", "",
		lineitem.Burst{StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 12), Budget: 10})

	groups := Group([]lineitem.LineItem{item}, []string{"market", "network", "station"}, 0)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Key != "||" {
		t.Errorf("expected key %q, got %q", "||", groups[0].Key)
	}
}
