package models

import (
	"encoding/json"
	"time"
)

// EventKind enumerates the business actions the event log accepts.
type EventKind string

const (
	EventProductViewed          EventKind = "product_viewed"
	EventProductAddedToCart     EventKind = "product_added_to_cart"
	EventProductRemovedFromCart EventKind = "product_removed_from_cart"
	EventCartAbandoned          EventKind = "cart_abandoned"
	EventPurchaseCompleted      EventKind = "purchase_completed"
	EventSearchPerformed        EventKind = "search_performed"
	EventRatingCreated          EventKind = "rating_created"
	EventSessionStart           EventKind = "session_start"
	EventSessionEnd             EventKind = "session_end"
	EventUserRegistered         EventKind = "user_registered"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventProductViewed, EventProductAddedToCart, EventProductRemovedFromCart,
		EventCartAbandoned, EventPurchaseCompleted, EventSearchPerformed,
		EventRatingCreated, EventSessionStart, EventSessionEnd, EventUserRegistered:
		return true
	default:
		return false
	}
}

// SubjectKind names the entity domain an event refers to.
type SubjectKind string

const (
	SubjectProduct SubjectKind = "product"
	SubjectCart    SubjectKind = "cart"
	SubjectOrder   SubjectKind = "order"
	SubjectUser    SubjectKind = "user"
	SubjectRating  SubjectKind = "rating"
	SubjectNone    SubjectKind = "none"
)

func (s SubjectKind) Valid() bool {
	switch s {
	case SubjectProduct, SubjectCart, SubjectOrder, SubjectUser, SubjectRating, SubjectNone:
		return true
	default:
		return false
	}
}

// Event is a single immutable record in the event log. Actor and subject
// identities are opaque references into other domains; nothing here assumes
// they still resolve.
type Event struct {
	EventID     string          `json:"eventId"`
	ActorID     string          `json:"actorId,omitempty"`
	Kind        EventKind       `json:"kind"`
	SubjectKind SubjectKind     `json:"subjectKind,omitempty"`
	SubjectID   string          `json:"subjectId,omitempty"`
	Action      string          `json:"action,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Device      string          `json:"device,omitempty"`
	Browser     string          `json:"browser,omitempty"`
	IPAddress   string          `json:"ipAddress,omitempty"`
	UserAgent   string          `json:"userAgent,omitempty"`
	SessionID   string          `json:"sessionId,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// RecordEventRequest is the wire shape for POST /events. Actor id, IP and
// user-agent come from the request context, never from the body.
type RecordEventRequest struct {
	Kind        EventKind       `json:"kind" binding:"required"`
	SubjectKind SubjectKind     `json:"subjectKind,omitempty"`
	SubjectID   string          `json:"subjectId,omitempty"`
	Action      string          `json:"action,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Device      string          `json:"device,omitempty"`
	Browser     string          `json:"browser,omitempty"`
	SessionID   string          `json:"sessionId,omitempty"`
}

type KindCount struct {
	Kind  EventKind `json:"kind"`
	Count uint64    `json:"count"`
}

// EventSummary groups event counts by kind inside an optional time window.
type EventSummary struct {
	TotalEvents uint64      `json:"totalEvents"`
	ByKind      []KindCount `json:"byKind"`
}
