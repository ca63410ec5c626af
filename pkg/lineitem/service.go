package lineitem

import (
	"context"
	"fmt"

	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/pkg/channel"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, item LineItem) (LineItem, error)
	Get(ctx context.Context, id int) (LineItem, error)
	GetForChannel(ctx context.Context, campaignUid string, ch channel.Channel) ([]LineItem, error)
	GetAll(ctx context.Context, campaignUid string) ([]LineItem, error)
	Update(ctx context.Context, item LineItem) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	// ClientPaysLookup maps line item id (as a string key, the shape accrual
	// schedules reference items by) to the clientPaysForMedia flag.
	ClientPaysLookup(ctx context.Context, campaignUid string) (map[string]bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, item LineItem) (LineItem, error) {
	if err := validate(item); err != nil {
		return LineItem{}, err
	}
	item.Recalculate()

	maxPosition, err := s.repo.FindMaxPosition(ctx, item.CampaignUid, item.Channel)
	if err != nil {
		return LineItem{}, err
	}
	item.Position = maxPosition + 100

	id, err := s.repo.Store(ctx, item)
	if err != nil {
		return LineItem{}, err
	}
	item.Id = id

	s.publishChanged(ctx, item)
	return item, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (LineItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetForChannel(ctx context.Context, campaignUid string, ch channel.Channel) ([]LineItem, error) {
	if !channel.IsValid(ch) {
		return nil, fmt.Errorf("unknown channel: %s", ch)
	}
	return s.repo.GetForChannel(ctx, campaignUid, ch)
}

func (s *ServiceImpl) GetAll(ctx context.Context, campaignUid string) ([]LineItem, error) {
	return s.repo.GetAll(ctx, campaignUid)
}

func (s *ServiceImpl) Update(ctx context.Context, item LineItem) (bool, error) {
	if err := validate(item); err != nil {
		return false, err
	}
	item.Recalculate()

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("line item not updated, probably because it does not exist (%d)", item.Id)
		return false, nil
	}
	s.publishChanged(ctx, item)
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishChanged(ctx, item)
	}
	return deleted, nil
}

func (s *ServiceImpl) ClientPaysLookup(ctx context.Context, campaignUid string) (map[string]bool, error) {
	items, err := s.repo.GetAll(ctx, campaignUid)
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]bool, len(items))
	for _, item := range items {
		lookup[fmt.Sprintf("%d", item.Id)] = item.ClientPaysForMedia
	}
	return lookup, nil
}

func validate(item LineItem) error {
	if !channel.IsValid(item.Channel) {
		return fmt.Errorf("unknown channel: %s", item.Channel)
	}
	if item.BuyType != "" && !channel.HasBuyType(item.Channel, item.BuyType) {
		return fmt.Errorf("buy type %q is not available on channel %s", item.BuyType, item.Channel)
	}
	for _, b := range item.Bursts {
		if b.EndDate.Before(b.StartDate) {
			return fmt.Errorf("burst end date %s is before start date %s",
				b.EndDate.Format("2006-01-02"), b.StartDate.Format("2006-01-02"))
		}
		if b.Budget < 0 {
			return fmt.Errorf("burst budget must not be negative")
		}
	}
	return nil
}

func (s *ServiceImpl) publishChanged(ctx context.Context, item LineItem) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.EventLineItemChanged, event_bus.LineItemChanged{
		CampaignUid: item.CampaignUid,
		Channel:     string(item.Channel),
		LineItemId:  item.Id,
	}))
	if err != nil {
		log.Warnf("failed to publish line item change: %v", err)
	}
}
