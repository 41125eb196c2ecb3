package dto

type SearchFilters struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

func (f *SearchFilters) Empty() bool {
	return f == nil || (f.Query == "" && f.Category == "" && f.Color == "")
}
