package accrual

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// StoredVersion is one persisted plan version's schedule payloads, kept as
// the raw JSON text they were uploaded with.
type StoredVersion struct {
	CampaignUid      string
	VersionNumber    int
	DeliverySchedule string
	BillingSchedule  string
}

type Repository interface {
	Store(ctx context.Context, v StoredVersion) error
	GetForCampaign(ctx context.Context, campaignUid string) ([]StoredVersion, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, v StoredVersion) error {
	query := `INSERT INTO accrual_schedule (campaign_uid, version_number, delivery_schedule, billing_schedule)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_uid, version_number)
		DO UPDATE SET delivery_schedule = EXCLUDED.delivery_schedule, billing_schedule = EXCLUDED.billing_schedule`

	_, err := r.db.ExecContext(ctx, query,
		v.CampaignUid,
		v.VersionNumber,
		v.DeliverySchedule,
		v.BillingSchedule,
	)
	if err != nil {
		err := fmt.Errorf("could not store accrual schedule: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetForCampaign(ctx context.Context, campaignUid string) ([]StoredVersion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT campaign_uid, version_number, delivery_schedule, billing_schedule
		FROM accrual_schedule WHERE campaign_uid = $1 ORDER BY version_number`, campaignUid)
	if err != nil {
		err := fmt.Errorf("could not query accrual schedules: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var versions []StoredVersion
	for rows.Next() {
		var v StoredVersion
		if err := rows.Scan(&v.CampaignUid, &v.VersionNumber, &v.DeliverySchedule, &v.BillingSchedule); err != nil {
			err := fmt.Errorf("could not scan accrual schedule: %w", err)
			log.Error(err)
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
