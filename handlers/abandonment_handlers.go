// api/handlers/abandonment_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"storepulse/api/middleware"
	"storepulse/api/models"
	"storepulse/api/store"

	"github.com/gin-gonic/gin"
)

type AbandonmentHandlers struct {
	Carts *store.AbandonmentStore
}

func NewAbandonmentHandlers(carts *store.AbandonmentStore) *AbandonmentHandlers {
	return &AbandonmentHandlers{Carts: carts}
}

// Record stores one abandonment snapshot for the cart. The caller supplies
// the cart contents; this surface never queries live cart state.
func (h *AbandonmentHandlers) Record(c *gin.Context) {
	cartID := c.Param("cartId")

	var req models.RecordAbandonmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !req.Stage.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown abandonment stage: " + string(req.Stage)})
		return
	}
	if req.Reason != "" && !req.Reason.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown abandonment reason: " + string(req.Reason)})
		return
	}

	now := time.Now().UTC()
	if req.Cart.CreatedAt.After(now) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart creation time cannot be in the future"})
		return
	}

	cart := models.AbandonedCart{
		CartID:        cartID,
		UserID:        middleware.ActorID(c),
		Items:         req.Cart.Items,
		Subtotal:      req.Cart.Subtotal,
		Total:         req.Cart.Total,
		CartCreatedAt: req.Cart.CreatedAt,
		AbandonedAt:   now,
		Reason:        req.Reason,
		Stage:         req.Stage,
		Device:        req.Device,
		Browser:       req.Browser,
		IPAddress:     c.ClientIP(),
		Metadata:      req.Metadata,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stored, err := h.Carts.Record(ctx, cart)
	if err != nil {
		log.Printf("Error recording abandonment for cart %s: %v", cartID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record abandoned cart"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Abandoned cart recorded successfully",
		"abandoned": stored,
	})
}

// List returns abandonment snapshots, newest first, optionally bounded.
func (h *AbandonmentHandlers) List(c *gin.Context) {
	from, ok := optionalTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := optionalTimeQuery(c, "to")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	carts, err := h.Carts.List(ctx, from, to)
	if err != nil {
		log.Printf("Error listing abandoned carts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve abandoned carts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(carts),
		"carts": carts,
	})
}

// Statistics returns the abandonment aggregate view.
func (h *AbandonmentHandlers) Statistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Carts.Statistics(ctx)
	if err != nil {
		log.Printf("Error computing abandonment statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve abandonment statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Reasons returns the reason breakdown, most common first.
func (h *AbandonmentHandlers) Reasons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	reasons, err := h.Carts.ReasonsBreakdown(ctx)
	if err != nil {
		log.Printf("Error listing abandonment reasons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve abandonment reasons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(reasons),
		"reasons": reasons,
	})
}
