// api/store/report_store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"storepulse/api/models"
	"storepulse/api/utils"
)

// ErrReportNotFound is returned when no sales report matches the requested
// period or bounds. Surfaced to the caller as a 404.
var ErrReportNotFound = errors.New("sales report not found for the requested period")

// ReportStore persists sales report snapshots. Reports are immutable history:
// every Insert creates a new row, lookups return the most recently generated
// match.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

const reportColumns = `id, period, starts_at, ends_at, generated_at,
		total_orders, total_revenue, avg_order_value,
		total_customers, new_customers, returning_customers,
		top_products, top_categories,
		carts_created, carts_abandoned, cart_abandonment_rate,
		overall_conversion_rate, extra_metrics`

// Insert stores a new report snapshot. Never updates an existing row.
func (s *ReportStore) Insert(ctx context.Context, report models.SalesReport) (models.SalesReport, error) {
	topProducts, err := json.Marshal(report.TopProducts)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("failed to encode top products: %w", err)
	}
	topCategories, err := json.Marshal(report.TopCategories)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("failed to encode top categories: %w", err)
	}
	extra := report.ExtraMetrics
	if extra == nil {
		extra = json.RawMessage("{}")
	}

	query := fmt.Sprintf(`
		INSERT INTO sales_reports (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`, reportColumns)

	_, err = s.db.ExecContext(ctx, query,
		report.ID,
		string(report.Period),
		report.StartsAt,
		report.EndsAt,
		report.GeneratedAt,
		report.TotalOrders,
		report.TotalRevenue,
		report.AvgOrderValue,
		report.TotalCustomers,
		report.NewCustomers,
		report.ReturningCustomers,
		topProducts,
		topCategories,
		report.CartsCreated,
		report.CartsAbandoned,
		report.CartAbandonmentRate,
		report.OverallConversionRate,
		[]byte(extra),
	)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("failed to insert sales report: %w", err)
	}

	return report, nil
}

// FindByPeriod returns the most recently generated report for a period kind.
// When both bounds are given, only reports fully inside them qualify.
func (s *ReportStore) FindByPeriod(ctx context.Context, period models.ReportPeriod, from, to *time.Time) (*models.SalesReport, error) {
	args := []interface{}{string(period)}
	whereClause := "WHERE period = $1"
	if from != nil && to != nil {
		whereClause += " AND starts_at >= $2 AND ends_at <= $3"
		args = append(args, *from, *to)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sales_reports
		%s
		ORDER BY generated_at DESC
		LIMIT 1;
	`, reportColumns, whereClause)

	return s.queryOne(ctx, query, args...)
}

// FindByExactBounds returns the most recent report whose window matches the
// bounds exactly. Used by period comparison.
func (s *ReportStore) FindByExactBounds(ctx context.Context, from, to time.Time) (*models.SalesReport, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sales_reports
		WHERE starts_at = $1 AND ends_at = $2
		ORDER BY generated_at DESC
		LIMIT 1;
	`, reportColumns)

	return s.queryOne(ctx, query, from, to)
}

// Compare looks up the most recent report for each window and computes
// period-over-period deltas. Percent changes are nil when the second period's
// value is zero.
func (s *ReportStore) Compare(ctx context.Context, period1, period2 models.PeriodBounds) (*models.ReportComparison, error) {
	report1, err := s.FindByExactBounds(ctx, period1.From, period1.To)
	if err != nil {
		return nil, err
	}
	report2, err := s.FindByExactBounds(ctx, period2.From, period2.To)
	if err != nil {
		return nil, err
	}

	return &models.ReportComparison{
		Report1: report1,
		Report2: report2,
		Comparison: models.ComparisonMetrics{
			OrdersDiff:       report1.TotalOrders - report2.TotalOrders,
			OrdersPctChange:  utils.PercentChange(float64(report1.TotalOrders), float64(report2.TotalOrders)),
			RevenueDiff:      report1.TotalRevenue - report2.TotalRevenue,
			RevenuePctChange: utils.PercentChange(report1.TotalRevenue, report2.TotalRevenue),
		},
	}, nil
}

func (s *ReportStore) queryOne(ctx context.Context, query string, args ...interface{}) (*models.SalesReport, error) {
	var (
		report                     models.SalesReport
		period                     string
		topProducts, topCategories []byte
		extra                      []byte
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&report.ID,
		&period,
		&report.StartsAt,
		&report.EndsAt,
		&report.GeneratedAt,
		&report.TotalOrders,
		&report.TotalRevenue,
		&report.AvgOrderValue,
		&report.TotalCustomers,
		&report.NewCustomers,
		&report.ReturningCustomers,
		&topProducts,
		&topCategories,
		&report.CartsCreated,
		&report.CartsAbandoned,
		&report.CartAbandonmentRate,
		&report.OverallConversionRate,
		&extra,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sales report: %w", err)
	}

	report.Period = models.ReportPeriod(period)
	if err := json.Unmarshal(topProducts, &report.TopProducts); err != nil {
		log.Printf("Error decoding top products for report %s: %v", report.ID, err)
		report.TopProducts = []models.ProductSales{}
	}
	if err := json.Unmarshal(topCategories, &report.TopCategories); err != nil {
		log.Printf("Error decoding top categories for report %s: %v", report.ID, err)
		report.TopCategories = []models.CategorySales{}
	}
	if len(extra) > 0 && string(extra) != "{}" {
		report.ExtraMetrics = json.RawMessage(extra)
	}

	return &report, nil
}
