package lineitem

import (
	"context"

	"github.com/mediaplan/mediaplan/pkg/channel"
)

type RepositoryStub struct {
	nextId int
	items  map[int]LineItem
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{items: map[int]LineItem{}}
}

func (s *RepositoryStub) Store(ctx context.Context, item LineItem) (int, error) {
	s.nextId++
	item.Id = s.nextId
	s.items[item.Id] = item
	return item.Id, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (LineItem, error) {
	if item, exists := s.items[id]; exists {
		return item, nil
	}
	return LineItem{}, ErrLineItemNotFound
}

func (s *RepositoryStub) GetAll(ctx context.Context, campaignUid string) ([]LineItem, error) {
	var items []LineItem
	for _, ch := range channel.All() {
		forChannel, _ := s.GetForChannel(ctx, campaignUid, ch)
		items = append(items, forChannel...)
	}
	return items, nil
}

func (s *RepositoryStub) GetForChannel(ctx context.Context, campaignUid string, ch channel.Channel) ([]LineItem, error) {
	var items []LineItem
	for id := 1; id <= s.nextId; id++ {
		item, exists := s.items[id]
		if exists && item.CampaignUid == campaignUid && item.Channel == ch {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *RepositoryStub) Update(ctx context.Context, item LineItem) (bool, error) {
	if stored, exists := s.items[item.Id]; exists {
		item.CampaignUid = stored.CampaignUid
		item.Channel = stored.Channel
		s.items[item.Id] = item
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.items[id]; exists {
		delete(s.items, id)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) FindMaxPosition(ctx context.Context, campaignUid string, ch channel.Channel) (int, error) {
	maxPosition := 0
	for _, item := range s.items {
		if item.CampaignUid == campaignUid && item.Channel == ch && item.Position > maxPosition {
			maxPosition = item.Position
		}
	}
	return maxPosition, nil
}

func (s *RepositoryStub) Cleanup() {
	s.items = map[int]LineItem{}
	s.nextId = 0
}
