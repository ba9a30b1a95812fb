// api/handlers/insights_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"storepulse/api/models"
	"storepulse/api/store"

	"github.com/gin-gonic/gin"
)

const (
	insightsCacheKey  = "analytics:insights"
	dashboardCacheKey = "analytics:dashboard"
	dashboardWindow   = 30 * 24 * time.Hour
)

type InsightsHandlers struct {
	Stats  *store.ProductStatsStore
	Carts  *store.AbandonmentStore
	Events *store.EventStore
	Cache  *store.InsightsCache
}

func NewInsightsHandlers(stats *store.ProductStatsStore, carts *store.AbandonmentStore, events *store.EventStore, cache *store.InsightsCache) *InsightsHandlers {
	return &InsightsHandlers{
		Stats:  stats,
		Carts:  carts,
		Events: events,
		Cache:  cache,
	}
}

// Recommendations derives advice from abandonment statistics and the
// best-selling products. Rules are independent and additive; the output is a
// deterministic function of the two inputs.
func Recommendations(stats models.AbandonmentStatistics, topProducts []models.ProductStatistic) []string {
	recommendations := []string{}

	if stats.TotalAbandoned > 0 && len(stats.ByReason) > 0 {
		topReason := stats.ByReason[0].Reason
		if topReason == models.ReasonPriceTooHigh {
			recommendations = append(recommendations,
				"Consider discounts or promotions to reduce abandonment driven by high prices")
		}
		if topReason == models.ReasonShippingCost {
			recommendations = append(recommendations,
				"Offer free shipping above a minimum order value")
		}
	}

	if len(topProducts) > 0 {
		recommendations = append(recommendations,
			"Feature the best-selling products on the landing page")
	}

	return recommendations
}

func (h *InsightsHandlers) buildInsights(ctx context.Context) (models.Insights, error) {
	topProducts, err := h.Stats.TopByVolume(ctx, 5)
	if err != nil {
		return models.Insights{}, err
	}

	abandonmentStats, err := h.Carts.Statistics(ctx)
	if err != nil {
		return models.Insights{}, err
	}

	eventSummary, err := h.Events.Summarize(ctx, nil, nil)
	if err != nil {
		return models.Insights{}, err
	}

	return models.Insights{
		TopProducts:      topProducts,
		AbandonmentStats: abandonmentStats,
		EventSummary:     eventSummary,
		Recommendations:  Recommendations(abandonmentStats, topProducts),
	}, nil
}

// Insights returns the recommendation view, cached for a short TTL.
func (h *InsightsHandlers) Insights(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var cached models.Insights
	if h.Cache.Get(ctx, insightsCacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	insights, err := h.buildInsights(ctx)
	if err != nil {
		log.Printf("Error building insights: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build insights"})
		return
	}

	h.Cache.Set(ctx, insightsCacheKey, insights)
	c.JSON(http.StatusOK, insights)
}

// Dashboard composes the unified read view over a fixed trailing 30-day
// window. The window is not caller-configurable.
func (h *InsightsHandlers) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	var cached models.Dashboard
	if h.Cache.Get(ctx, dashboardCacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	now := time.Now().UTC()
	windowStart := now.Add(-dashboardWindow)

	topProducts, err := h.Stats.TopByVolume(ctx, 5)
	if err != nil {
		log.Printf("Error loading top products for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	abandonmentStats, err := h.Carts.Statistics(ctx)
	if err != nil {
		log.Printf("Error loading abandonment statistics for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	eventSummary, err := h.Events.Summarize(ctx, &windowStart, &now)
	if err != nil {
		log.Printf("Error summarizing events for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	insights, err := h.buildInsights(ctx)
	if err != nil {
		log.Printf("Error building insights for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	dashboard := models.Dashboard{
		Period:           models.PeriodBounds{From: windowStart, To: now},
		TopProducts:      topProducts,
		AbandonmentStats: abandonmentStats,
		EventSummary:     eventSummary,
		Insights:         insights,
	}

	h.Cache.Set(ctx, dashboardCacheKey, dashboard)
	c.JSON(http.StatusOK, dashboard)
}
