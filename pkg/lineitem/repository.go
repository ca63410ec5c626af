package lineitem

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/deliverables"
	log "github.com/sirupsen/logrus"
)

var ErrLineItemNotFound = errors.New("line item not found")

type Repository interface {
	Store(ctx context.Context, item LineItem) (int, error)
	Get(ctx context.Context, id int) (LineItem, error)
	// GetAll returns all line items for a campaign, all channels, ordered by
	// channel and position.
	GetAll(ctx context.Context, campaignUid string) ([]LineItem, error)
	GetForChannel(ctx context.Context, campaignUid string, ch channel.Channel) ([]LineItem, error)
	Update(ctx context.Context, item LineItem) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	FindMaxPosition(ctx context.Context, campaignUid string, ch channel.Channel) (int, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const lineItemColumns = `id, campaign_uid, channel, market, network, station, daypart, placement, size,
		platform, site, bid_strategy, targeting, creative, buying_demo, buy_type,
		budget_includes_fees, client_pays_for_media, fixed_cost_media, no_adserving, bursts, position`

func (r *RepositoryImpl) Store(ctx context.Context, item LineItem) (int, error) {
	query := `INSERT INTO line_item (
			campaign_uid, channel, market, network, station, daypart, placement, size,
			platform, site, bid_strategy, targeting, creative, buying_demo, buy_type,
			budget_includes_fees, client_pays_for_media, fixed_cost_media, no_adserving, bursts, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		item.CampaignUid,
		string(item.Channel),
		item.Market,
		item.Network,
		item.Station,
		item.Daypart,
		item.Placement,
		item.Size,
		item.Platform,
		item.Site,
		item.BidStrategy,
		item.Targeting,
		item.Creative,
		item.BuyingDemo,
		string(item.BuyType),
		item.BudgetIncludesFees,
		item.ClientPaysForMedia,
		item.FixedCostMedia,
		item.NoAdserving,
		encodeBursts(item.Bursts),
		item.Position,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store line item: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (LineItem, error) {
	query := fmt.Sprintf("SELECT %s FROM line_item WHERE id = $1", lineItemColumns)
	row := r.db.QueryRowContext(ctx, query, id)
	item, err := scanLineItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return LineItem{}, ErrLineItemNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get line item %d: %w", id, err)
		log.Error(err)
		return LineItem{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, campaignUid string) ([]LineItem, error) {
	query := fmt.Sprintf("SELECT %s FROM line_item WHERE campaign_uid = $1 ORDER BY channel, position", lineItemColumns)
	return r.queryLineItems(ctx, query, campaignUid)
}

func (r *RepositoryImpl) GetForChannel(ctx context.Context, campaignUid string, ch channel.Channel) ([]LineItem, error) {
	query := fmt.Sprintf("SELECT %s FROM line_item WHERE campaign_uid = $1 AND channel = $2 ORDER BY position", lineItemColumns)
	return r.queryLineItems(ctx, query, campaignUid, string(ch))
}

func (r *RepositoryImpl) queryLineItems(ctx context.Context, query string, args ...any) ([]LineItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query line items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			err := fmt.Errorf("could not scan line item: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over line items: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, item LineItem) (bool, error) {
	query := `UPDATE line_item SET
			market = $1, network = $2, station = $3, daypart = $4, placement = $5, size = $6,
			platform = $7, site = $8, bid_strategy = $9, targeting = $10, creative = $11,
			buying_demo = $12, buy_type = $13, budget_includes_fees = $14, client_pays_for_media = $15,
			fixed_cost_media = $16, no_adserving = $17, bursts = $18, position = $19
		WHERE id = $20`

	result, err := r.db.ExecContext(ctx, query,
		item.Market,
		item.Network,
		item.Station,
		item.Daypart,
		item.Placement,
		item.Size,
		item.Platform,
		item.Site,
		item.BidStrategy,
		item.Targeting,
		item.Creative,
		item.BuyingDemo,
		string(item.BuyType),
		item.BudgetIncludesFees,
		item.ClientPaysForMedia,
		item.FixedCostMedia,
		item.NoAdserving,
		encodeBursts(item.Bursts),
		item.Position,
		item.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update line item: %w", err)
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

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM line_item WHERE id = $1", id)
	if err != nil {
		err := fmt.Errorf("could not delete line item: %w", err)
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

func (r *RepositoryImpl) FindMaxPosition(ctx context.Context, campaignUid string, ch channel.Channel) (int, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT MAX(position) FROM line_item WHERE campaign_uid = $1 AND channel = $2",
		campaignUid, string(ch))
	var maxPosition sql.NullInt64
	if err := row.Scan(&maxPosition); err != nil {
		err := fmt.Errorf("could not find max position: %w", err)
		log.Error(err)
		return 0, err
	}
	if !maxPosition.Valid {
		return 0, nil
	}
	return int(maxPosition.Int64), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLineItem(row rowScanner) (LineItem, error) {
	var item LineItem
	var ch, buyType, bursts string
	err := row.Scan(
		&item.Id,
		&item.CampaignUid,
		&ch,
		&item.Market,
		&item.Network,
		&item.Station,
		&item.Daypart,
		&item.Placement,
		&item.Size,
		&item.Platform,
		&item.Site,
		&item.BidStrategy,
		&item.Targeting,
		&item.Creative,
		&item.BuyingDemo,
		&buyType,
		&item.BudgetIncludesFees,
		&item.ClientPaysForMedia,
		&item.FixedCostMedia,
		&item.NoAdserving,
		&bursts,
		&item.Position,
	)
	if err != nil {
		return LineItem{}, err
	}
	item.Channel = channel.Channel(ch)
	item.BuyType = deliverables.BuyType(buyType)
	item.Bursts = decodeBursts(bursts)
	return item, nil
}
