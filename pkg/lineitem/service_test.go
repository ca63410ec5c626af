package lineitem

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/deliverables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepository()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a line item and recalculate deliverables", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		item := LineItem{
			CampaignUid: "c-1",
			Channel:     channel.Digital,
			Site:        "news.com.au",
			BuyType:     deliverables.BuyTypeCPM,
			Bursts: []Burst{
				{
					StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
					Budget:    5000,
					BuyAmount: 50,
				},
			},
		}

		// when
		created, err := service.Create(ctx, item)

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, 100, created.Position)
		assert.Equal(t, float64(100000), created.Bursts[0].CalculatedValue)
	})

	t.Run("should reject an unknown channel", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, LineItem{CampaignUid: "c-1", Channel: "telegraph"})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown channel")
	})

	t.Run("should reject a buy type the channel does not offer", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, LineItem{
			CampaignUid: "c-1",
			Channel:     channel.Radio,
			BuyType:     deliverables.BuyTypeCPM,
		})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not available on channel")
	})

	t.Run("should reject inverted burst dates", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, LineItem{
			CampaignUid: "c-1",
			Channel:     channel.Television,
			BuyType:     deliverables.BuyTypeSpots,
			Bursts: []Burst{
				{
					StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "before start date")
	})

	t.Run("should position items 100 apart within a channel", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, err := service.Create(ctx, LineItem{CampaignUid: "c-1", Channel: channel.Radio})
		require.NoError(t, err)

		// when
		second, err := service.Create(ctx, LineItem{CampaignUid: "c-1", Channel: channel.Radio})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 100, first.Position)
		assert.Equal(t, 200, second.Position)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should publish a change event on update", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		service = NewService(repoStub, bus)
		defer repoStub.Cleanup()

		// given
		created, err := service.Create(ctx, LineItem{CampaignUid: "c-1", Channel: channel.Television})
		require.NoError(t, err)

		var received []event_bus.LineItemChanged
		event_bus.SubscribeTyped[event_bus.LineItemChanged](bus, event_bus.EventLineItemChanged,
			func(e event_bus.EventT[event_bus.LineItemChanged]) error {
				received = append(received, e.Data)
				return nil
			})

		// when
		created.Market = "Melbourne"
		ok, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, received, 1)
		assert.Equal(t, "c-1", received[0].CampaignUid)
		assert.Equal(t, created.Id, received[0].LineItemId)
	})

	t.Run("should report false for a missing line item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		ok, err := service.Update(ctx, LineItem{Id: 999, CampaignUid: "c-1", Channel: channel.Television})

		// then
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestServiceImpl_ClientPaysLookup(t *testing.T) {
	t.Run("should map line item ids to the client-pays flag", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		paying, err := service.Create(ctx, LineItem{CampaignUid: "c-1", Channel: channel.Television, ClientPaysForMedia: true})
		require.NoError(t, err)
		standard, err := service.Create(ctx, LineItem{CampaignUid: "c-1", Channel: channel.Radio})
		require.NoError(t, err)

		// when
		lookup, err := service.ClientPaysLookup(ctx, "c-1")

		// then
		assert.NoError(t, err)
		assert.True(t, lookup[strconv.Itoa(paying.Id)])
		assert.False(t, lookup[strconv.Itoa(standard.Id)])
	})
}
