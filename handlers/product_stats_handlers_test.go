package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeRejectsUnknownBucket(t *testing.T) {
	r := newTestRouter()
	h := NewProductStatsHandlers(nil)
	r.POST("/products/:productId/recompute", h.Recompute)

	req := httptest.NewRequest(http.MethodPost, "/products/p1/recompute?period=hourly&from=2025-01-01T00:00:00Z&to=2025-01-02T00:00:00Z", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown statistic period")
}

func TestRecomputeRequiresBounds(t *testing.T) {
	r := newTestRouter()
	h := NewProductStatsHandlers(nil)
	r.POST("/products/:productId/recompute", h.Recompute)

	req := httptest.NewRequest(http.MethodPost, "/products/p1/recompute?period=daily", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}

func TestRecomputeRejectsInvertedBounds(t *testing.T) {
	r := newTestRouter()
	h := NewProductStatsHandlers(nil)
	r.POST("/products/:productId/recompute", h.Recompute)

	req := httptest.NewRequest(http.MethodPost, "/products/p1/recompute?period=daily&from=2025-01-02T00:00:00Z&to=2025-01-01T00:00:00Z", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTopRejectsInvalidLimit(t *testing.T) {
	r := newTestRouter()
	h := NewProductStatsHandlers(nil)
	r.GET("/products/top", h.Top)

	req := httptest.NewRequest(http.MethodGet, "/products/top?limit=-3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendingRequiresBounds(t *testing.T) {
	r := newTestRouter()
	h := NewProductStatsHandlers(nil)
	r.GET("/products/trending", h.Trending)

	req := httptest.NewRequest(http.MethodGet, "/products/trending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
