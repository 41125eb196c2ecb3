package model

import "time"

const OrderStatusPlaced = "placed"

type Order struct {
	ID        string      `db:"id" json:"orderId"`
	BuyerID   string      `db:"buyer_id" json:"buyerId"`
	BuyerName string      `db:"buyer_name" json:"buyerName"`
	Status    string      `db:"status" json:"status"`
	Total     float64     `db:"total" json:"total"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	Items     []OrderItem `db:"-" json:"items"`
}

// OrderItem snapshots a listing at the time the order was placed.
type OrderItem struct {
	OrderID       string  `db:"order_id" json:"-"`
	Position      int     `db:"position" json:"-"`
	ListingID     string  `db:"listing_id" json:"productId"`
	VendorID      string  `db:"vendor_id" json:"vendorId"`
	VendorName    string  `db:"vendor_name" json:"vendorName"`
	CanonicalName string  `db:"canonical_name" json:"canonicalName"`
	Price         float64 `db:"price" json:"price"`
	Quantity      int     `db:"quantity" json:"quantity"`
}
