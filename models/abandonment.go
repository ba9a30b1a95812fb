package models

import (
	"encoding/json"
	"time"
)

// AbandonmentStage marks where in the funnel the user stopped.
type AbandonmentStage string

const (
	StageCart     AbandonmentStage = "cart"
	StageCheckout AbandonmentStage = "checkout"
	StagePayment  AbandonmentStage = "payment"
)

func (s AbandonmentStage) Valid() bool {
	switch s {
	case StageCart, StageCheckout, StagePayment:
		return true
	default:
		return false
	}
}

// AbandonmentReason is the caller-reported cause. Stage and reason are
// independent axes; the reason may stay unknown even when the stage is known.
type AbandonmentReason string

const (
	ReasonPriceTooHigh         AbandonmentReason = "price_too_high"
	ReasonShippingCost         AbandonmentReason = "shipping_cost"
	ReasonComplicatedProcess   AbandonmentReason = "complicated_process"
	ReasonMissingPaymentMethod AbandonmentReason = "missing_payment_method"
	ReasonJustBrowsing         AbandonmentReason = "just_browsing"
	ReasonUnknown              AbandonmentReason = "unknown"
)

func (r AbandonmentReason) Valid() bool {
	switch r {
	case ReasonPriceTooHigh, ReasonShippingCost, ReasonComplicatedProcess,
		ReasonMissingPaymentMethod, ReasonJustBrowsing, ReasonUnknown:
		return true
	default:
		return false
	}
}

// AbandonedCartItem is one line item frozen at abandonment time.
type AbandonedCartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// AbandonedCart is an immutable snapshot of a cart at the moment the caller
// declared it abandoned. One record per report; the same cart may appear
// multiple times.
type AbandonedCart struct {
	ID            string              `json:"id"`
	CartID        string              `json:"cartId"`
	UserID        string              `json:"userId,omitempty"`
	Items         []AbandonedCartItem `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	Total         float64             `json:"total"`
	CartCreatedAt time.Time           `json:"cartCreatedAt"`
	AbandonedAt   time.Time           `json:"abandonedAt"`
	Reason        AbandonmentReason   `json:"reason"`
	Stage         AbandonmentStage    `json:"stage"`
	Device        string              `json:"device,omitempty"`
	Browser       string              `json:"browser,omitempty"`
	IPAddress     string              `json:"ipAddress,omitempty"`
	Metadata      json.RawMessage     `json:"metadata,omitempty"`
}

// CartSnapshot carries the live cart state supplied by the caller. The
// tracker never queries cart state itself.
type CartSnapshot struct {
	Items     []AbandonedCartItem `json:"items"`
	Subtotal  float64             `json:"subtotal"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
}

// RecordAbandonmentRequest is the wire shape for POST /abandoned-carts/:cartId.
type RecordAbandonmentRequest struct {
	Stage    AbandonmentStage  `json:"stage" binding:"required"`
	Reason   AbandonmentReason `json:"reason,omitempty"`
	Device   string            `json:"device,omitempty"`
	Browser  string            `json:"browser,omitempty"`
	Metadata json.RawMessage   `json:"metadata,omitempty"`
	Cart     CartSnapshot      `json:"cart"`
}

type ReasonStat struct {
	Reason   AbandonmentReason `json:"reason"`
	Count    int64             `json:"count"`
	AvgTotal float64           `json:"avgTotal"`
}

type StageStat struct {
	Stage AbandonmentStage `json:"stage"`
	Count int64            `json:"count"`
}

type LostValue struct {
	TotalLost float64 `json:"totalLost"`
	AvgLost   float64 `json:"avgLost"`
}

// AbandonmentStatistics aggregates all abandonment records at call time.
// LostValue is zero-valued, never absent, when no records exist.
type AbandonmentStatistics struct {
	TotalAbandoned int64        `json:"totalAbandoned"`
	ByReason       []ReasonStat `json:"byReason"`
	ByStage        []StageStat  `json:"byStage"`
	LostValue      LostValue    `json:"lostValue"`
}

type ReasonCount struct {
	Reason AbandonmentReason `json:"reason"`
	Count  int64             `json:"count"`
}
