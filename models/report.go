package models

import (
	"encoding/json"
	"time"
)

// ReportPeriod is the granularity of a sales report.
type ReportPeriod string

const (
	PeriodDaily     ReportPeriod = "daily"
	PeriodWeekly    ReportPeriod = "weekly"
	PeriodMonthly   ReportPeriod = "monthly"
	PeriodQuarterly ReportPeriod = "quarterly"
	PeriodAnnual    ReportPeriod = "annual"
	PeriodCustom    ReportPeriod = "custom"
)

func (p ReportPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodAnnual, PeriodCustom:
		return true
	default:
		return false
	}
}

type ProductSales struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesReport is a point-in-time snapshot of sales metrics for a period.
// Every generation call stores a new record; reports are history, never
// upserted.
type SalesReport struct {
	ID                    string          `json:"id"`
	Period                ReportPeriod    `json:"period"`
	StartsAt              time.Time       `json:"startsAt"`
	EndsAt                time.Time       `json:"endsAt"`
	GeneratedAt           time.Time       `json:"generatedAt"`
	TotalOrders           int64           `json:"totalOrders"`
	TotalRevenue          float64         `json:"totalRevenue"`
	AvgOrderValue         float64         `json:"avgOrderValue"`
	TotalCustomers        int64           `json:"totalCustomers"`
	NewCustomers          int64           `json:"newCustomers"`
	ReturningCustomers    int64           `json:"returningCustomers"`
	TopProducts           []ProductSales  `json:"topProducts"`
	TopCategories         []CategorySales `json:"topCategories"`
	CartsCreated          int64           `json:"cartsCreated"`
	CartsAbandoned        int64           `json:"cartsAbandoned"`
	CartAbandonmentRate   float64         `json:"cartAbandonmentRate"`
	OverallConversionRate float64         `json:"overallConversionRate"`
	ExtraMetrics          json.RawMessage `json:"extraMetrics,omitempty"`
}

// GenerateReportRequest is the wire shape for POST /reports/generate. From and
// to are required for the custom period and ignored otherwise.
type GenerateReportRequest struct {
	Period ReportPeriod `json:"period" binding:"required"`
	From   *time.Time   `json:"from,omitempty"`
	To     *time.Time   `json:"to,omitempty"`
}

// PeriodBounds identifies a report by its exact window.
type PeriodBounds struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

type CompareRequest struct {
	Period1 PeriodBounds `json:"period1" binding:"required"`
	Period2 PeriodBounds `json:"period2" binding:"required"`
}

// ComparisonMetrics holds period-over-period deltas. Percent changes are nil
// when the older period's value is zero; the division is never performed.
type ComparisonMetrics struct {
	OrdersDiff       int64    `json:"ordersDiff"`
	OrdersPctChange  *float64 `json:"ordersPctChange"`
	RevenueDiff      float64  `json:"revenueDiff"`
	RevenuePctChange *float64 `json:"revenuePctChange"`
}

type ReportComparison struct {
	Report1    *SalesReport      `json:"report1"`
	Report2    *SalesReport      `json:"report2"`
	Comparison ComparisonMetrics `json:"comparison"`
}

// Insights is the recommendation view derived from current statistics.
type Insights struct {
	TopProducts      []ProductStatistic    `json:"topProducts"`
	AbandonmentStats AbandonmentStatistics `json:"abandonmentStats"`
	EventSummary     EventSummary          `json:"eventSummary"`
	Recommendations  []string              `json:"recommendations"`
}

// Dashboard is the composed read view over a fixed trailing 30-day window.
type Dashboard struct {
	Period           PeriodBounds          `json:"period"`
	TopProducts      []ProductStatistic    `json:"topProducts"`
	AbandonmentStats AbandonmentStatistics `json:"abandonmentStats"`
	EventSummary     EventSummary          `json:"eventSummary"`
	Insights         Insights              `json:"insights"`
}
