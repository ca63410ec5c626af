package cashflow

import (
	"context"
	"fmt"

	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/fees"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
)

// MonthSummary is one month of the campaign's investment view: the raw
// prorated amount plus its presentation label and formatted value for the
// cash-flow table.
type MonthSummary struct {
	Month     MonthKey
	Label     string
	Amount    float64
	Formatted string
}

type Service interface {
	// CampaignCashflow prorates every burst's total investment (media + fee)
	// across calendar months and returns the chronologically ordered summary.
	CampaignCashflow(ctx context.Context, campaignUid string) ([]MonthSummary, error)
}

type ServiceImpl struct {
	campaignService campaign.Service
	lineItemService lineitem.Service
}

func NewService(campaignService campaign.Service, lineItemService lineitem.Service) *ServiceImpl {
	return &ServiceImpl{campaignService: campaignService, lineItemService: lineItemService}
}

func (s *ServiceImpl) CampaignCashflow(ctx context.Context, campaignUid string) ([]MonthSummary, error) {
	c, err := s.campaignService.Get(ctx, campaignUid)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	items, err := s.lineItemService.GetAll(ctx, campaignUid)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}

	var perBurst [][]Allocation
	for _, item := range items {
		policy := item.Policy(c.FeePercent)
		for _, b := range item.Bursts {
			p := policy
			if b.FeeOverride > 0 {
				p.FeePercent = b.FeeOverride
			}
			total := fees.Decompose(b.Budget, p).TotalAmount
			if total == 0 {
				continue
			}
			perBurst = append(perBurst, Prorate(b.StartDate, b.EndDate, total))
		}
	}

	merged := Accumulate(perBurst...)
	summaries := make([]MonthSummary, 0, len(merged))
	for _, a := range merged {
		summaries = append(summaries, MonthSummary{
			Month:     a.Month,
			Label:     Label(a.Month),
			Amount:    a.Amount,
			Formatted: utils.FormatCurrency(a.Amount),
		})
	}
	return summaries, nil
}
