package model

const (
	EventOrderPlaced    = "OrderPlaced"
	EventListingChanged = "ListingChanged"
)

type ListingChangedPayload struct {
	ListingID     string `json:"listing_id"`
	VendorID      string `json:"vendor_id"`
	CanonicalName string `json:"canonical_name"`
	Action        string `json:"action"`
}

type OrderPlacedPayload struct {
	OrderID string      `json:"order_id"`
	BuyerID string      `json:"buyer_id"`
	Items   []OrderItem `json:"items"`
}
