package accrual

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/deliverables"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (context.Context, campaign.Service, lineitem.Service, *utils.MockClock, *ServiceImpl) {
	t.Helper()
	ctx := context.Background()
	bus := event_bus.NewEventBus()
	campaignService := campaign.NewService(campaign.NewStubRepository(), bus)
	lineItemService := lineitem.NewService(lineitem.NewStubRepository(), bus)
	clock := &utils.MockClock{FixedNow: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
	service := NewService(NewStubRepository(), campaignService, lineItemService, clock)
	return ctx, campaignService, lineItemService, clock, service
}

func createCampaign(t *testing.T, ctx context.Context, campaignService campaign.Service) campaign.Campaign {
	t.Helper()
	c, err := campaignService.Create(ctx, campaign.Campaign{
		ClientName: "Acme Pty Ltd",
		Name:       "Summer Launch",
		MbaNumber:  "MBA-7",
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		FeePercent: 20,
	})
	require.NoError(t, err)
	return c
}

func TestServiceImpl_Accruals(t *testing.T) {
	ctx, campaignService, _, _, service := setup(t)
	c := createCampaign(t, ctx, campaignService)

	// given: one stored version with a january delivery and billing schedule
	err := service.SaveVersion(ctx, StoredVersion{
		CampaignUid:      c.Uid,
		VersionNumber:    1,
		DeliverySchedule: `{"2025-01": {"lineItems": [{"id": "li-1", "name": "Sydney TV", "amount": 1000}]}}`,
		BillingSchedule:  `{"2025-01": {"lineItems": [{"id": "li-1", "name": "Sydney TV", "amount": 800}]}}`,
	})
	require.NoError(t, err)

	// when: months requested in a non-ISO label shape
	rows, err := service.Accruals(ctx, c.Uid, []string{"January 2025"})

	// then
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Pty Ltd", rows[0].ClientName)
	assert.Equal(t, "Summer Launch", rows[0].CampaignName)
	assert.Equal(t, "MBA-7", rows[0].MbaNumber)
	assert.InDelta(t, 200, rows[0].Difference, 1e-9)
}

func TestServiceImpl_Accruals_DefaultsToCurrentMonth(t *testing.T) {
	ctx, campaignService, _, clock, service := setup(t)
	c := createCampaign(t, ctx, campaignService)

	err := service.SaveVersion(ctx, StoredVersion{
		CampaignUid:      c.Uid,
		VersionNumber:    1,
		DeliverySchedule: `{"2025-01": {"lineItems": [{"id": "li-1", "name": "x", "amount": 100}]}, "2025-02": {"lineItems": [{"id": "li-1", "name": "x", "amount": 900}]}}`,
	})
	require.NoError(t, err)

	// when: no months given, clock fixed inside january
	rows, err := service.Accruals(ctx, c.Uid, nil)

	// then: only the current month contributes
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 100, rows[0].DeliveryAmount, 1e-9)

	// and a different current month selects a different bucket
	clock.SetNow(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	rows, err = service.Accruals(ctx, c.Uid, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 900, rows[0].DeliveryAmount, 1e-9)
}

func TestServiceImpl_Accruals_AppliesClientPaysFlag(t *testing.T) {
	ctx, campaignService, lineItemService, _, service := setup(t)
	c := createCampaign(t, ctx, campaignService)

	// given: a client-pays line item whose id the delivery schedule references
	item, err := lineItemService.Create(ctx, lineitem.LineItem{
		CampaignUid:        c.Uid,
		Channel:            channel.Television,
		BuyType:            deliverables.BuyTypeSpots,
		ClientPaysForMedia: true,
	})
	require.NoError(t, err)

	err = service.SaveVersion(ctx, StoredVersion{
		CampaignUid:   c.Uid,
		VersionNumber: 1,
		DeliverySchedule: `{"2025-01": {"lineItems": [{"id": "` +
			itemId(item) + `", "name": "Sydney TV", "amount": 5000}]}}`,
		BillingSchedule: `{"2025-01": {"lineItems": [{"id": "` +
			itemId(item) + `", "name": "Sydney TV", "amount": 600}]}}`,
	})
	require.NoError(t, err)

	// when
	rows, err := service.Accruals(ctx, c.Uid, []string{"2025-01"})

	// then: delivery excluded, billing kept
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].DeliveryAmount)
	assert.InDelta(t, 600, rows[0].BillingAmount, 1e-9)
}

func TestServiceImpl_Accruals_UnknownCampaign(t *testing.T) {
	ctx, _, _, _, service := setup(t)

	_, err := service.Accruals(ctx, "no-such-uid", nil)

	assert.ErrorIs(t, err, campaign.ErrCampaignNotFound)
}

func TestServiceImpl_Accruals_InvalidPayloadYieldsNoRows(t *testing.T) {
	ctx, campaignService, _, _, service := setup(t)
	c := createCampaign(t, ctx, campaignService)

	err := service.SaveVersion(ctx, StoredVersion{
		CampaignUid:      c.Uid,
		VersionNumber:    1,
		DeliverySchedule: `{broken`,
	})
	require.NoError(t, err)

	rows, err := service.Accruals(ctx, c.Uid, []string{"2025-01"})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func itemId(item lineitem.LineItem) string {
	return strconv.Itoa(item.Id)
}
