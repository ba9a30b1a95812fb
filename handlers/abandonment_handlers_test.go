package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAbandonmentRejectsMissingStage(t *testing.T) {
	r := newTestRouter()
	h := NewAbandonmentHandlers(nil)
	r.POST("/abandoned-carts/:cartId", h.Record)

	req := httptest.NewRequest(http.MethodPost, "/abandoned-carts/c1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordAbandonmentRejectsUnknownStage(t *testing.T) {
	r := newTestRouter()
	h := NewAbandonmentHandlers(nil)
	r.POST("/abandoned-carts/:cartId", h.Record)

	req := httptest.NewRequest(http.MethodPost, "/abandoned-carts/c1", strings.NewReader(`{"stage":"wishlist"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown abandonment stage")
}

func TestRecordAbandonmentRejectsUnknownReason(t *testing.T) {
	r := newTestRouter()
	h := NewAbandonmentHandlers(nil)
	r.POST("/abandoned-carts/:cartId", h.Record)

	body := `{"stage":"checkout","reason":"alien_abduction"}`
	req := httptest.NewRequest(http.MethodPost, "/abandoned-carts/c1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown abandonment reason")
}

func TestRecordAbandonmentRejectsFutureCartCreation(t *testing.T) {
	r := newTestRouter()
	h := NewAbandonmentHandlers(nil)
	r.POST("/abandoned-carts/:cartId", h.Record)

	body := `{"stage":"cart","cart":{"items":[],"subtotal":0,"total":0,"createdAt":"2099-01-01T00:00:00Z"}}`
	req := httptest.NewRequest(http.MethodPost, "/abandoned-carts/c1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "future")
}
