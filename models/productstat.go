package models

import "time"

// StatBucket is the rollup granularity for product statistics.
type StatBucket string

const (
	BucketDaily   StatBucket = "daily"
	BucketWeekly  StatBucket = "weekly"
	BucketMonthly StatBucket = "monthly"
	BucketAnnual  StatBucket = "annual"
)

func (b StatBucket) Valid() bool {
	switch b {
	case BucketDaily, BucketWeekly, BucketMonthly, BucketAnnual:
		return true
	default:
		return false
	}
}

// ProductStatistic is a derived rollup for one product over one time bucket.
// Exactly one record exists per (product, bucket, starts, ends) key;
// recomputation overwrites it in place.
type ProductStatistic struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"productId"`
	ProductName      string     `json:"productName"`
	Bucket           StatBucket `json:"bucket"`
	StartsAt         time.Time  `json:"startsAt"`
	EndsAt           time.Time  `json:"endsAt"`
	TotalViews       int64      `json:"totalViews"`
	TotalAddedToCart int64      `json:"totalAddedToCart"`
	TotalAbandoned   int64      `json:"totalAbandoned"`
	TotalSales       int64      `json:"totalSales"`
	ConversionRate   float64    `json:"conversionRate"`
	TotalRevenue     float64    `json:"totalRevenue"`
	AvgRating        float64    `json:"avgRating"`
	RatingCount      int64      `json:"ratingCount"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
