package cashflow

import (
	"context"
	"testing"
	"time"

	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/deliverables"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_CampaignCashflow(t *testing.T) {
	ctx := context.Background()
	bus := event_bus.NewEventBus()
	campaignService := campaign.NewService(campaign.NewStubRepository(), bus)
	lineItemService := lineitem.NewService(lineitem.NewStubRepository(), bus)
	service := NewService(campaignService, lineItemService)

	// given: a 20% fee campaign with one net-budget burst spanning Jan 20 - Feb 10
	c, err := campaignService.Create(ctx, campaign.Campaign{
		ClientName: "Acme Pty Ltd",
		Name:       "Summer Launch",
		MbaNumber:  "MBA-7",
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		FeePercent: 20,
	})
	require.NoError(t, err)

	_, err = lineItemService.Create(ctx, lineitem.LineItem{
		CampaignUid: c.Uid,
		Channel:     channel.Television,
		BuyType:     deliverables.BuyTypeSpots,
		Bursts: []lineitem.Burst{
			{
				StartDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
				Budget:    1760, // media 1760 + fee 1760*20/(100-20) = 2200 total
				BuyAmount: 88,
			},
		},
	})
	require.NoError(t, err)

	// when
	summaries, err := service.CampaignCashflow(ctx, c.Uid)

	// then: 2200 total, 12 of 22 days in January, 10 in February
	assert.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, MonthKey("2024-01"), summaries[0].Month)
	assert.Equal(t, "January 2024", summaries[0].Label)
	assert.InDelta(t, 1200, summaries[0].Amount, 1e-9)
	assert.Equal(t, "$1,200.00", summaries[0].Formatted)
	assert.Equal(t, MonthKey("2024-02"), summaries[1].Month)
	assert.InDelta(t, 1000, summaries[1].Amount, 1e-9)
}

func TestServiceImpl_CampaignCashflow_UnknownCampaign(t *testing.T) {
	ctx := context.Background()
	bus := event_bus.NewEventBus()
	service := NewService(
		campaign.NewService(campaign.NewStubRepository(), bus),
		lineitem.NewService(lineitem.NewStubRepository(), bus),
	)

	_, err := service.CampaignCashflow(ctx, "missing")

	assert.ErrorIs(t, err, campaign.ErrCampaignNotFound)
}
