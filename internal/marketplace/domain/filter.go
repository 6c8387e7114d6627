package domain

import "strings"

const (
	SortByCreatedAt = "createdAt"
	SortByPrice     = "price"
	SortByTitle     = "title"

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductFilter drives the public listing query. Sold items are always excluded.
type ProductFilter struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	SortBy    string
	Ascending bool
}

// Normalize replaces unknown sort fields with createdAt.
func (f *ProductFilter) Normalize() {
	switch f.SortBy {
	case SortByCreatedAt, SortByPrice, SortByTitle:
	default:
		f.SortBy = SortByCreatedAt
	}
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)
}

// OwnedFilter scopes a paginated search to one seller.
type OwnedFilter struct {
	SellerID string
	Search   string
	Page     int
	Limit    int
}

func (f *OwnedFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	f.Search = strings.TrimSpace(f.Search)
}

func (f OwnedFilter) Skip() int64 {
	return int64(f.Page-1) * int64(f.Limit)
}

// ProductPatch carries the fields supplied to an update. Nil means unchanged.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
}

func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.Category == nil && p.Image == nil
}
