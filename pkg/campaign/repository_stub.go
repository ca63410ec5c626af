package campaign

import "context"

type RepositoryStub struct {
	nextId    int
	campaigns map[string]Campaign
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{campaigns: map[string]Campaign{}}
}

func (s *RepositoryStub) Store(ctx context.Context, c Campaign) (int, error) {
	s.nextId++
	c.Id = s.nextId
	s.campaigns[c.Uid] = c
	return c.Id, nil
}

func (s *RepositoryStub) GetByUid(ctx context.Context, uid string) (Campaign, error) {
	if c, exists := s.campaigns[uid]; exists {
		return c, nil
	}
	return Campaign{}, ErrCampaignNotFound
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Campaign, error) {
	campaigns := make([]Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (s *RepositoryStub) Update(ctx context.Context, c Campaign) (bool, error) {
	stored, exists := s.campaigns[c.Uid]
	if !exists {
		return false, nil
	}
	c.Id = stored.Id
	s.campaigns[c.Uid] = c
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, uid string) (bool, error) {
	if _, exists := s.campaigns[uid]; exists {
		delete(s.campaigns, uid)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.campaigns = map[string]Campaign{}
	s.nextId = 0
}
