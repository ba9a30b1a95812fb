// api/store/report_generator.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storepulse/api/models"
	"storepulse/api/utils"
)

// ReportGenerator assembles sales report snapshots. Raw order, revenue and
// customer aggregates come from the order ledger; this type only windows,
// shapes and persists them.
type ReportGenerator struct {
	Reports *ReportStore
	Ledger  *OrderLedger
	Carts   *AbandonmentStore
}

func NewReportGenerator(reports *ReportStore, ledger *OrderLedger, carts *AbandonmentStore) *ReportGenerator {
	return &ReportGenerator{
		Reports: reports,
		Ledger:  ledger,
		Carts:   carts,
	}
}

// Generate resolves the period bounds, gathers the aggregates and stores a
// new report snapshot. Every call creates a new record.
func (g *ReportGenerator) Generate(ctx context.Context, period models.ReportPeriod, from, to *time.Time) (models.SalesReport, error) {
	startsAt, endsAt := utils.ResolveReportRange(period, from, to)

	totalOrders, totalRevenue, avgOrderValue, err := g.Ledger.OrderTotals(ctx, startsAt, endsAt)
	if err != nil {
		return models.SalesReport{}, err
	}

	totalCustomers, newCustomers, returningCustomers, err := g.Ledger.CustomerCounts(ctx, startsAt, endsAt)
	if err != nil {
		return models.SalesReport{}, err
	}

	topProducts, err := g.Ledger.TopProducts(ctx, startsAt, endsAt, 5)
	if err != nil {
		return models.SalesReport{}, err
	}

	topCategories, err := g.Ledger.TopCategories(ctx, startsAt, endsAt, 5)
	if err != nil {
		return models.SalesReport{}, err
	}

	cartsCreated, err := g.Ledger.CartsCreated(ctx, startsAt, endsAt)
	if err != nil {
		return models.SalesReport{}, err
	}

	cartsAbandoned, err := g.Carts.CountBetween(ctx, startsAt, endsAt)
	if err != nil {
		return models.SalesReport{}, err
	}

	report := models.SalesReport{
		ID:                    uuid.New().String(),
		Period:                period,
		StartsAt:              startsAt,
		EndsAt:                endsAt,
		GeneratedAt:           time.Now().UTC(),
		TotalOrders:           totalOrders,
		TotalRevenue:          utils.Round2(totalRevenue),
		AvgOrderValue:         utils.Round2(avgOrderValue),
		TotalCustomers:        totalCustomers,
		NewCustomers:          newCustomers,
		ReturningCustomers:    returningCustomers,
		TopProducts:           topProducts,
		TopCategories:         topCategories,
		CartsCreated:          cartsCreated,
		CartsAbandoned:        cartsAbandoned,
		CartAbandonmentRate:   utils.ConversionRate(cartsAbandoned, cartsCreated),
		OverallConversionRate: utils.ConversionRate(totalOrders, cartsCreated),
	}

	return g.Reports.Insert(ctx, report)
}
