// api/store/product_stats_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"storepulse/api/models"
	"storepulse/api/utils"
)

const (
	defaultVolumeLimit = 10
	trendingLimit      = 20
)

// ProductStatsStore maintains the per-product, per-bucket funnel rollups. One
// row exists per (product, bucket, starts, ends) key; Recompute overwrites it
// atomically, so recomputation over a stable history is idempotent.
type ProductStatsStore struct {
	db      *sql.DB
	events  *EventStore
	carts   *AbandonmentStore
	ledger  *OrderLedger
	catalog *CatalogStore
}

func NewProductStatsStore(db *sql.DB, events *EventStore, carts *AbandonmentStore, ledger *OrderLedger, catalog *CatalogStore) *ProductStatsStore {
	return &ProductStatsStore{
		db:      db,
		events:  events,
		carts:   carts,
		ledger:  ledger,
		catalog: catalog,
	}
}

// Recompute counts the product's funnel activity in [from, to] and upserts
// the statistic for that bucket. Views and add-to-carts come from the event
// log, abandonment inclusion from the snapshots, units sold and revenue from
// the order ledger, ratings from the catalog.
func (s *ProductStatsStore) Recompute(ctx context.Context, productID string, bucket models.StatBucket, from, to time.Time) (models.ProductStatistic, error) {
	views, err := s.events.CountSubjectEvents(ctx, models.EventProductViewed, productID, from, to)
	if err != nil {
		return models.ProductStatistic{}, err
	}

	addedToCart, err := s.events.CountSubjectEvents(ctx, models.EventProductAddedToCart, productID, from, to)
	if err != nil {
		return models.ProductStatistic{}, err
	}

	abandoned, err := s.carts.CountContainingProduct(ctx, productID, from, to)
	if err != nil {
		return models.ProductStatistic{}, err
	}

	unitsSold, revenue, err := s.ledger.ProductSales(ctx, productID, from, to)
	if err != nil {
		return models.ProductStatistic{}, err
	}

	avgRating, ratingCount, err := s.catalog.RatingSummary(ctx, productID)
	if err != nil {
		return models.ProductStatistic{}, err
	}

	name, err := s.catalog.ProductName(ctx, productID)
	if err != nil {
		return models.ProductStatistic{}, err
	}

	stat := models.ProductStatistic{
		ProductID:        productID,
		ProductName:      name,
		Bucket:           bucket,
		StartsAt:         from,
		EndsAt:           to,
		TotalViews:       int64(views),
		TotalAddedToCart: int64(addedToCart),
		TotalAbandoned:   abandoned,
		TotalSales:       unitsSold,
		ConversionRate:   utils.ConversionRate(int64(addedToCart), int64(views)),
		TotalRevenue:     revenue,
		AvgRating:        utils.Round2(avgRating),
		RatingCount:      ratingCount,
		UpdatedAt:        time.Now().UTC(),
	}

	if err := s.upsert(ctx, &stat); err != nil {
		return models.ProductStatistic{}, err
	}

	return stat, nil
}

// upsert writes the statistic in one statement; concurrent recomputes for the
// same key cannot create duplicates, last writer wins.
func (s *ProductStatsStore) upsert(ctx context.Context, stat *models.ProductStatistic) error {
	query := `
		INSERT INTO product_statistics (
			id, product_id, product_name, bucket, starts_at, ends_at,
			total_views, total_added_to_cart, total_abandoned, total_sales,
			conversion_rate, total_revenue, avg_rating, rating_count, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (product_id, bucket, starts_at, ends_at) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			total_views = EXCLUDED.total_views,
			total_added_to_cart = EXCLUDED.total_added_to_cart,
			total_abandoned = EXCLUDED.total_abandoned,
			total_sales = EXCLUDED.total_sales,
			conversion_rate = EXCLUDED.conversion_rate,
			total_revenue = EXCLUDED.total_revenue,
			avg_rating = EXCLUDED.avg_rating,
			rating_count = EXCLUDED.rating_count,
			updated_at = EXCLUDED.updated_at
		RETURNING id;
	`
	err := s.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		stat.ProductID,
		stat.ProductName,
		string(stat.Bucket),
		stat.StartsAt,
		stat.EndsAt,
		stat.TotalViews,
		stat.TotalAddedToCart,
		stat.TotalAbandoned,
		stat.TotalSales,
		stat.ConversionRate,
		stat.TotalRevenue,
		stat.AvgRating,
		stat.RatingCount,
		stat.UpdatedAt,
	).Scan(&stat.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert statistic for product %s: %w", stat.ProductID, err)
	}

	return nil
}

// TopByVolume returns statistics sorted by units sold, best first.
func (s *ProductStatsStore) TopByVolume(ctx context.Context, limit int) ([]models.ProductStatistic, error) {
	if limit <= 0 {
		limit = defaultVolumeLimit
	}
	return s.queryStats(ctx, `
		SELECT `+statColumns+`
		FROM product_statistics
		ORDER BY total_sales DESC
		LIMIT $1;
	`, limit)
}

// BottomByVolume returns the slowest sellers, excluding products with no
// sales at all.
func (s *ProductStatsStore) BottomByVolume(ctx context.Context, limit int) ([]models.ProductStatistic, error) {
	if limit <= 0 {
		limit = defaultVolumeLimit
	}
	return s.queryStats(ctx, `
		SELECT `+statColumns+`
		FROM product_statistics
		WHERE total_sales > 0
		ORDER BY total_sales ASC
		LIMIT $1;
	`, limit)
}

// Trending returns up to 20 statistics whose buckets sit fully inside
// [from, to], best conversion first.
func (s *ProductStatsStore) Trending(ctx context.Context, from, to time.Time) ([]models.ProductStatistic, error) {
	return s.queryStats(ctx, `
		SELECT `+statColumns+`
		FROM product_statistics
		WHERE starts_at >= $1 AND ends_at <= $2
		ORDER BY conversion_rate DESC
		LIMIT $3;
	`, from, to, trendingLimit)
}

const statColumns = `id, product_id, product_name, bucket, starts_at, ends_at,
		total_views, total_added_to_cart, total_abandoned, total_sales,
		conversion_rate, total_revenue, avg_rating, rating_count, updated_at`

func (s *ProductStatsStore) queryStats(ctx context.Context, query string, args ...interface{}) ([]models.ProductStatistic, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query product statistics: %w", err)
	}
	defer rows.Close()

	stats := []models.ProductStatistic{}
	for rows.Next() {
		var stat models.ProductStatistic
		var bucket string
		if err := rows.Scan(
			&stat.ID,
			&stat.ProductID,
			&stat.ProductName,
			&bucket,
			&stat.StartsAt,
			&stat.EndsAt,
			&stat.TotalViews,
			&stat.TotalAddedToCart,
			&stat.TotalAbandoned,
			&stat.TotalSales,
			&stat.ConversionRate,
			&stat.TotalRevenue,
			&stat.AvgRating,
			&stat.RatingCount,
			&stat.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning product statistic row: %v", err)
			continue
		}
		stat.Bucket = models.StatBucket(bucket)
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading product statistics: %w", err)
	}

	return stats, nil
}
