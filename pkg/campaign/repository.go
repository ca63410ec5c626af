package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type Repository interface {
	Store(ctx context.Context, c Campaign) (int, error)
	GetByUid(ctx context.Context, uid string) (Campaign, error)
	GetAll(ctx context.Context) ([]Campaign, error)
	Update(ctx context.Context, c Campaign) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, c Campaign) (int, error) {
	query := `INSERT INTO campaign (uid, client_name, name, mba_number, start_date, end_date, fee_percent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		c.Uid,
		c.ClientName,
		c.Name,
		c.MbaNumber,
		c.StartDate.Format("2006-01-02"),
		c.EndDate.Format("2006-01-02"),
		c.FeePercent,
		string(c.Status),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store campaign: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, uid, client_name, name, mba_number, start_date, end_date, fee_percent, status
		FROM campaign WHERE uid = $1`, uid)

	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Campaign{}, ErrCampaignNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get campaign %s: %w", uid, err)
		log.Error(err)
		return Campaign{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, uid, client_name, name, mba_number, start_date, end_date, fee_percent, status
		FROM campaign ORDER BY client_name, name`)
	if err != nil {
		err := fmt.Errorf("could not query campaigns: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var campaigns []Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			err := fmt.Errorf("could not scan campaign: %w", err)
			log.Error(err)
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over campaigns: %w", err)
		log.Error(err)
		return nil, err
	}
	return campaigns, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, c Campaign) (bool, error) {
	query := `UPDATE campaign SET
			client_name = $1, name = $2, mba_number = $3, start_date = $4, end_date = $5,
			fee_percent = $6, status = $7
		WHERE uid = $8`

	result, err := r.db.ExecContext(ctx, query,
		c.ClientName,
		c.Name,
		c.MbaNumber,
		c.StartDate.Format("2006-01-02"),
		c.EndDate.Format("2006-01-02"),
		c.FeePercent,
		string(c.Status),
		c.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update campaign: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, uid string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaign WHERE uid = $1", uid)
	if err != nil {
		err := fmt.Errorf("could not delete campaign: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (Campaign, error) {
	var c Campaign
	var status string
	if err := row.Scan(
		&c.Id,
		&c.Uid,
		&c.ClientName,
		&c.Name,
		&c.MbaNumber,
		&c.StartDate,
		&c.EndDate,
		&c.FeePercent,
		&status,
	); err != nil {
		return Campaign{}, err
	}
	c.Status = Status(status)
	return c, nil
}
