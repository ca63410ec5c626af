package accrual

import (
	"context"
	"encoding/json"

	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Accruals reconciles every stored schedule version of the campaign over
	// the given month labels. With no labels it defaults to the current month.
	Accruals(ctx context.Context, campaignUid string, monthLabels []string) ([]Row, error)
	SaveVersion(ctx context.Context, v StoredVersion) error
}

type ServiceImpl struct {
	repo            Repository
	campaignService campaign.Service
	lineItemService lineitem.Service
	clock           utils.Clock
}

func NewService(
	repo Repository,
	campaignService campaign.Service,
	lineItemService lineitem.Service,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		repo:            repo,
		campaignService: campaignService,
		lineItemService: lineItemService,
		clock:           clock,
	}
}

func (s *ServiceImpl) Accruals(ctx context.Context, campaignUid string, monthLabels []string) ([]Row, error) {
	c, err := s.campaignService.Get(ctx, campaignUid)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.GetForCampaign(ctx, campaignUid)
	if err != nil {
		return nil, err
	}
	clientPays, err := s.lineItemService.ClientPaysLookup(ctx, campaignUid)
	if err != nil {
		return nil, err
	}

	months := s.selectMonths(monthLabels)
	versions := make([]Version, 0, len(stored))
	for _, v := range stored {
		versions = append(versions, Version{
			ClientName:       c.ClientName,
			CampaignName:     c.Name,
			MbaNumber:        c.MbaNumber,
			VersionNumber:    v.VersionNumber,
			DeliverySchedule: decodeSchedule(v.DeliverySchedule),
			BillingSchedule:  decodeSchedule(v.BillingSchedule),
		})
	}

	return Reconcile(versions, months, clientPays), nil
}

func (s *ServiceImpl) SaveVersion(ctx context.Context, v StoredVersion) error {
	if _, err := s.campaignService.Get(ctx, v.CampaignUid); err != nil {
		return err
	}
	return s.repo.Store(ctx, v)
}

// selectMonths normalizes the requested labels, dropping unparsable ones.
func (s *ServiceImpl) selectMonths(labels []string) []MonthKey {
	if len(labels) == 0 {
		return []MonthKey{MonthKey(s.clock.Now().Format("2006-01"))}
	}
	months := make([]MonthKey, 0, len(labels))
	for _, label := range labels {
		month, ok := NormalizeMonth(label)
		if !ok {
			log.Warnf("skipping unparsable accrual month %q", label)
			continue
		}
		months = append(months, month)
	}
	return months
}

// decodeSchedule parses stored payload text. Invalid or empty JSON yields nil,
// which flattens to no lines.
func decodeSchedule(raw string) any {
	if raw == "" {
		return nil
	}
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warnf("could not decode accrual schedule payload: %v", err)
		return nil
	}
	return payload
}
