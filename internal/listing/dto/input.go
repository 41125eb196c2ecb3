package dto

type CreateListingInput struct {
	VendorID      string
	VendorName    string
	CanonicalName string
	Price         *float64
	Category      string
	Color         string
	StemsPerBunch int
	UnitsPerBox   int
	BoxType       string
}

// ListingFields is a partial update; nil fields are left unchanged.
type ListingFields struct {
	CanonicalName *string  `json:"canonicalName,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Color         *string  `json:"color,omitempty"`
	StemsPerBunch *int     `json:"stemPerBunch,omitempty"`
	UnitsPerBox   *int     `json:"unitPerBox,omitempty"`
	BoxType       *string  `json:"boxType,omitempty"`
}

func (f *ListingFields) Empty() bool {
	return f == nil || (f.CanonicalName == nil && f.Price == nil && f.Category == nil &&
		f.Color == nil && f.StemsPerBunch == nil && f.UnitsPerBox == nil && f.BoxType == nil)
}

type UpdateListingInput struct {
	ID       string
	VendorID string
	Fields   ListingFields
}
