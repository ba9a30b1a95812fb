// api/handlers/event_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"storepulse/api/middleware"
	"storepulse/api/models"
	"storepulse/api/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandlers struct {
	Events *store.EventStore
}

func NewEventHandlers(events *store.EventStore) *EventHandlers {
	return &EventHandlers{Events: events}
}

// RecordEvent appends one event to the log. Anonymous sessions are allowed;
// the actor id is attached only when the request carried a valid token.
func (h *EventHandlers) RecordEvent(c *gin.Context) {
	var req models.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event kind: " + string(req.Kind)})
		return
	}
	if req.SubjectKind != "" && !req.SubjectKind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subject kind: " + string(req.SubjectKind)})
		return
	}

	event := models.Event{
		EventID:     uuid.New().String(),
		ActorID:     middleware.ActorID(c),
		Kind:        req.Kind,
		SubjectKind: req.SubjectKind,
		SubjectID:   req.SubjectID,
		Action:      req.Action,
		Payload:     req.Payload,
		Device:      req.Device,
		Browser:     req.Browser,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		SessionID:   req.SessionID,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	stored, err := h.Events.RecordEvent(ctx, event)
	if err != nil {
		log.Printf("Error recording event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event recorded successfully",
		"event":   stored,
	})
}

// ListByActor returns an actor's events, newest first, default limit 100.
func (h *EventHandlers) ListByActor(c *gin.Context) {
	actorID := c.Param("userId")

	var limit uint64 = 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.ParseUint(limitParam, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, err := h.Events.ListByActor(ctx, actorID, limit)
	if err != nil {
		log.Printf("Error listing events for actor %s: %v", actorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  len(events),
		"events": events,
	})
}

// ListByKind returns events of one kind inside an optional window.
func (h *EventHandlers) ListByKind(c *gin.Context) {
	kind := models.EventKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event kind: " + string(kind)})
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

	events, err := h.Events.ListByKind(ctx, kind, from, to)
	if err != nil {
		log.Printf("Error listing events of kind %s: %v", kind, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":   kind,
		"total":  len(events),
		"events": events,
	})
}

// Summary groups event counts by kind within the optional window.
func (h *EventHandlers) Summary(c *gin.Context) {
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

	summary, err := h.Events.Summarize(ctx, from, to)
	if err != nil {
		log.Printf("Error summarizing events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
