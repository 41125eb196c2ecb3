package model

import "time"

// AlertSnapshot describes one vendor listing priced above the cheapest competitor.
type AlertSnapshot struct {
	CanonicalName     string  `json:"canonicalName"`
	YourPrice         float64 `json:"yourPrice"`
	MarketAverage     float64 `json:"marketAverage"`
	LowestMarketPrice float64 `json:"lowestMarketPrice"`
	PercentAbove      float64 `json:"percentAbove"`
	Difference        float64 `json:"difference"`
}

type VendorAlert struct {
	AlertSnapshot
	IsRead bool `json:"isRead"`
}

// Acknowledgement records the vendor price at which an alert was last reviewed.
// An alert counts as read only while ReadAtPrice equals the alert's YourPrice.
type Acknowledgement struct {
	VendorID      string    `db:"vendor_id" json:"vendorId"`
	CanonicalName string    `db:"canonical_name" json:"canonicalName"`
	ReadAtPrice   float64   `db:"read_at_price" json:"readAtPrice"`
	ReadAt        time.Time `db:"read_at" json:"readAt"`
}
