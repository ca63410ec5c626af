package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/fees"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, c Campaign) (Campaign, error)
	Get(ctx context.Context, uid string) (Campaign, error)
	GetAll(ctx context.Context) ([]Campaign, error)
	Update(ctx context.Context, c Campaign) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, c Campaign) (Campaign, error) {
	if err := validate(c); err != nil {
		return Campaign{}, err
	}
	c.Uid = uuid.New().String()
	c.StartDate = utils.DateOnly(c.StartDate)
	c.EndDate = utils.DateOnly(c.EndDate)
	if c.Status == "" {
		c.Status = StatusDraft
	}

	id, err := s.repo.Store(ctx, c)
	if err != nil {
		return Campaign{}, err
	}
	c.Id = id
	return c, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Campaign, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Campaign, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, c Campaign) (bool, error) {
	if err := validate(c); err != nil {
		return false, err
	}
	c.StartDate = utils.DateOnly(c.StartDate)
	c.EndDate = utils.DateOnly(c.EndDate)

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("campaign not updated, probably because it does not exist (%s)", c.Uid)
		return false, nil
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.EventCampaignChanged, event_bus.CampaignChanged{
		CampaignUid: c.Uid,
	}))
	if err != nil {
		log.Warnf("failed to publish campaign change: %v", err)
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	return s.repo.Delete(ctx, uid)
}

// validate enforces the configuration invariants every engine downstream is
// free to assume: valid fee percentage and an ordered date range.
func validate(c Campaign) error {
	if err := fees.ValidatePercent(c.FeePercent); err != nil {
		return err
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("campaign end date %s is before start date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	if c.ClientName == "" || c.Name == "" {
		return fmt.Errorf("campaign requires a client name and a campaign name")
	}
	return nil
}
