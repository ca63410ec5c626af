package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
	log "github.com/sirupsen/logrus"
)

// Schedule is one channel's laid-out plan: the grouped line items placed on
// the campaign date grid, ready for rendering.
type Schedule struct {
	Campaign   campaign.Campaign
	Channel    channel.Channel
	FeePercent float64
	Groups     []GroupedLineItem
	Grid       Grid
	Rows       []RowLayout
}

type Service interface {
	BuildSchedule(ctx context.Context, campaignUid string, ch channel.Channel) (Schedule, error)
	ExportCSV(ctx context.Context, campaignUid string, ch channel.Channel) (string, error)
}

type ServiceImpl struct {
	campaignService campaign.Service
	lineItemService lineitem.Service
	renderer        *CsvRendererImpl

	mu       sync.Mutex
	csvCache map[cacheKey]string
}

type cacheKey struct {
	campaignUid string
	channel     channel.Channel
}

func NewService(
	campaignService campaign.Service,
	lineItemService lineitem.Service,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	s := &ServiceImpl{
		campaignService: campaignService,
		lineItemService: lineItemService,
		renderer:        NewCsvRenderer(),
		csvCache:        make(map[cacheKey]string),
	}
	event_bus.SubscribeTyped[event_bus.LineItemChanged](eventBus, event_bus.EventLineItemChanged,
		func(e event_bus.EventT[event_bus.LineItemChanged]) error {
			s.invalidate(e.Data.CampaignUid)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.CampaignChanged](eventBus, event_bus.EventCampaignChanged,
		func(e event_bus.EventT[event_bus.CampaignChanged]) error {
			s.invalidate(e.Data.CampaignUid)
			return nil
		})
	return s
}

func (s *ServiceImpl) BuildSchedule(ctx context.Context, campaignUid string, ch channel.Channel) (Schedule, error) {
	if !channel.IsValid(ch) {
		return Schedule{}, fmt.Errorf("unknown channel: %s", ch)
	}
	c, err := s.campaignService.Get(ctx, campaignUid)
	if err != nil {
		return Schedule{}, err
	}
	items, err := s.lineItemService.GetForChannel(ctx, campaignUid, ch)
	if err != nil {
		return Schedule{}, err
	}

	groups := Group(items, channel.GroupingFields(ch), c.FeePercent)
	grid := NewGrid(c.StartDate, c.EndDate)
	rows := Layout(groups, grid)

	return Schedule{
		Campaign:   c,
		Channel:    ch,
		FeePercent: c.FeePercent,
		Groups:     groups,
		Grid:       grid,
		Rows:       rows,
	}, nil
}

// ExportCSV renders a channel schedule to CSV, serving from a per
// campaign-and-channel cache that is dropped whenever the campaign or any of
// its line items change.
func (s *ServiceImpl) ExportCSV(ctx context.Context, campaignUid string, ch channel.Channel) (string, error) {
	key := cacheKey{campaignUid: campaignUid, channel: ch}

	s.mu.Lock()
	cached, ok := s.csvCache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	schedule, err := s.BuildSchedule(ctx, campaignUid, ch)
	if err != nil {
		return "", err
	}
	rendered, err := s.renderer.RenderSchedule(schedule)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.csvCache[key] = rendered
	s.mu.Unlock()
	return rendered, nil
}

func (s *ServiceImpl) invalidate(campaignUid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.csvCache {
		if key.campaignUid == campaignUid {
			delete(s.csvCache, key)
		}
	}
	log.Debugf("dropped cached schedule exports for campaign %s", campaignUid)
}
