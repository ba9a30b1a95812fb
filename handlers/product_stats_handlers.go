// api/handlers/product_stats_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"storepulse/api/models"
	"storepulse/api/store"

	"github.com/gin-gonic/gin"
)

type ProductStatsHandlers struct {
	Stats *store.ProductStatsStore
}

func NewProductStatsHandlers(stats *store.ProductStatsStore) *ProductStatsHandlers {
	return &ProductStatsHandlers{Stats: stats}
}

// Recompute rebuilds the product's statistic for the requested bucket and
// window. Recomputing an unchanged history is idempotent.
func (h *ProductStatsHandlers) Recompute(c *gin.Context) {
	productID := c.Param("productId")

	bucket := models.StatBucket(c.Query("period"))
	if !bucket.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown statistic period: " + string(bucket)})
		return
	}

	from, ok := requiredTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := requiredTimeQuery(c, "to")
	if !ok {
		return
	}
	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must not be after 'to'"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	stat, err := h.Stats.Recompute(ctx, productID, bucket, from, to)
	if err != nil {
		log.Printf("Error recomputing statistics for product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute product statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Product statistics recomputed successfully",
		"statistic": stat,
	})
}

// Top returns the best sellers by units sold.
func (h *ProductStatsHandlers) Top(c *gin.Context) {
	h.byVolume(c, h.Stats.TopByVolume)
}

// Bottom returns the slowest sellers, zero-volume products excluded.
func (h *ProductStatsHandlers) Bottom(c *gin.Context) {
	h.byVolume(c, h.Stats.BottomByVolume)
}

func (h *ProductStatsHandlers) byVolume(c *gin.Context, query func(context.Context, int) ([]models.ProductStatistic, error)) {
	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := query(ctx, limit)
	if err != nil {
		log.Printf("Error querying products by volume: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(products),
		"products": products,
	})
}

// Trending returns the best-converting buckets fully inside [from, to].
func (h *ProductStatsHandlers) Trending(c *gin.Context) {
	from, ok := requiredTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := requiredTimeQuery(c, "to")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	trending, err := h.Stats.Trending(ctx, from, to)
	if err != nil {
		log.Printf("Error querying trending products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trending products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(trending),
		"trending": trending,
	})
}
