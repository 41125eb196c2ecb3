package model

// Listing is one vendor's priced offer of a canonical flower product.
// A vendor may hold several listings under the same canonical name.
type Listing struct {
	BaseModel
	CanonicalName string  `db:"canonical_name" json:"canonicalName"`
	VendorID      string  `db:"vendor_id" json:"vendorId"`
	VendorName    string  `db:"vendor_name" json:"vendorName"`
	Price         float64 `db:"price" json:"price"`
	Category      string  `db:"category" json:"category"`
	Color         string  `db:"color" json:"color"`
	StemsPerBunch int     `db:"stems_per_bunch" json:"stemPerBunch"`
	UnitsPerBox   int     `db:"units_per_box" json:"unitPerBox"`
	BoxType       string  `db:"box_type" json:"boxType"`
}

const (
	DefaultCategory      = "Other"
	DefaultColor         = "Assorted"
	DefaultStemsPerBunch = 1
	DefaultUnitsPerBox   = 1
	DefaultBoxType       = "EB"
)
