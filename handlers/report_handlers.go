// api/handlers/report_handlers.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"storepulse/api/models"
	"storepulse/api/store"

	"github.com/gin-gonic/gin"
)

type ReportHandlers struct {
	Reports   *store.ReportStore
	Generator *store.ReportGenerator
}

func NewReportHandlers(reports *store.ReportStore, generator *store.ReportGenerator) *ReportHandlers {
	return &ReportHandlers{Reports: reports, Generator: generator}
}

// Generate creates a new sales report snapshot for the requested period.
// Reports are immutable history: repeated calls add records.
func (h *ReportHandlers) Generate(c *gin.Context) {
	var req models.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !req.Period.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report period: " + string(req.Period)})
		return
	}
	if req.Period == models.PeriodCustom && (req.From == nil || req.To == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Custom period requires both 'from' and 'to'"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	report, err := h.Generator.Generate(ctx, req.Period, req.From, req.To)
	if err != nil {
		log.Printf("Error generating sales report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate sales report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sales report generated successfully",
		"report":  report,
	})
}

// GetByPeriod returns the most recent report for a period kind, optionally
// restricted to reports fully inside [from, to].
func (h *ReportHandlers) GetByPeriod(c *gin.Context) {
	period := models.ReportPeriod(c.Param("period"))
	if !period.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report period: " + string(period)})
		return
	}

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

	report, err := h.Reports.FindByPeriod(ctx, period, from, to)
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No report found for the requested period"})
			return
		}
		log.Printf("Error fetching report for period %s: %v", period, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Compare returns two stored reports with period-over-period deltas.
func (h *ReportHandlers) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	comparison, err := h.Reports.Compare(ctx, req.Period1, req.Period2)
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "One or both reports not found for the requested bounds"})
			return
		}
		log.Printf("Error comparing report periods: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare report periods"})
		return
	}

	c.JSON(http.StatusOK, comparison)
}
