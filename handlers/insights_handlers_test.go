package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/api/models"
)

func abandonmentStatsWithTopReason(reason models.AbandonmentReason) models.AbandonmentStatistics {
	return models.AbandonmentStatistics{
		TotalAbandoned: 4,
		ByReason: []models.ReasonStat{
			{Reason: reason, Count: 3, AvgTotal: 120},
			{Reason: models.ReasonJustBrowsing, Count: 1, AvgTotal: 40},
		},
	}
}

func TestRecommendationsPriceTooHigh(t *testing.T) {
	recs := Recommendations(abandonmentStatsWithTopReason(models.ReasonPriceTooHigh), nil)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "discounts or promotions")
}

func TestRecommendationsShippingCost(t *testing.T) {
	recs := Recommendations(abandonmentStatsWithTopReason(models.ReasonShippingCost), nil)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "free shipping")
}

func TestRecommendationsTopProducts(t *testing.T) {
	top := []models.ProductStatistic{{ProductID: "p1", TotalSales: 12}}

	recs := Recommendations(models.AbandonmentStatistics{}, top)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "best-selling")
}

func TestRecommendationsAreAdditive(t *testing.T) {
	top := []models.ProductStatistic{{ProductID: "p1", TotalSales: 12}}

	recs := Recommendations(abandonmentStatsWithTopReason(models.ReasonPriceTooHigh), top)

	assert.Len(t, recs, 2)
}

func TestRecommendationsEmptyInputs(t *testing.T) {
	recs := Recommendations(models.AbandonmentStatistics{}, nil)

	assert.Empty(t, recs)
}

func TestRecommendationsIgnoreNonTopReason(t *testing.T) {
	// Only the most common reason drives the pricing/shipping rules.
	stats := models.AbandonmentStatistics{
		TotalAbandoned: 5,
		ByReason: []models.ReasonStat{
			{Reason: models.ReasonJustBrowsing, Count: 4},
			{Reason: models.ReasonPriceTooHigh, Count: 1},
		},
	}

	recs := Recommendations(stats, nil)

	assert.Empty(t, recs)
}

func TestRecommendationsDeterministic(t *testing.T) {
	stats := abandonmentStatsWithTopReason(models.ReasonShippingCost)
	top := []models.ProductStatistic{{ProductID: "p1"}}

	first := Recommendations(stats, top)
	second := Recommendations(stats, top)

	assert.Equal(t, first, second)
}
