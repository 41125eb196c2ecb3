package model

// CatalogSummary is the buyer-facing view of every listing sharing a canonical name.
// Only LowestPrice and VendorCount are aggregated; the descriptive fields come from
// the first listing seen while folding.
type CatalogSummary struct {
	CanonicalName string  `json:"canonicalName"`
	LowestPrice   float64 `json:"lowestPrice"`
	VendorCount   int     `json:"vendorCount"`
	Category      string  `json:"category"`
	Color         string  `json:"color"`
	StemsPerBunch int     `json:"stemPerBunch"`
	UnitsPerBox   int     `json:"unitPerBox"`
	BoxType       string  `json:"boxType"`
}

type TrendingProduct struct {
	CatalogSummary
	TotalSold int `json:"totalSold"`
}

type Offer struct {
	ListingID     string  `json:"productId"`
	VendorID      string  `json:"vendorId"`
	VendorName    string  `json:"vendorName"`
	Price         float64 `json:"price"`
	StemsPerBunch int     `json:"stemPerBunch"`
	UnitsPerBox   int     `json:"unitPerBox"`
	BoxType       string  `json:"boxType"`
	Category      string  `json:"category"`
	Color         string  `json:"color"`
}

type ProductDetail struct {
	CanonicalName string  `json:"canonicalName"`
	Category      string  `json:"category"`
	Color         string  `json:"color"`
	Offers        []Offer `json:"offers"`
}
