package dto

type PlaceOrderInput struct {
	BuyerID   string
	BuyerName string
	Items     []OrderItemInput
}

// OrderItemInput is what the cart submits. Quantity stays a float so that
// fractional values can be rejected instead of silently truncated.
type OrderItemInput struct {
	ListingID     string  `json:"productId"`
	VendorID      string  `json:"vendorId"`
	VendorName    string  `json:"vendorName"`
	CanonicalName string  `json:"canonicalName"`
	Price         float64 `json:"price"`
	Quantity      float64 `json:"quantity"`
}
