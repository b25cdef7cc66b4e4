package catalog

import (
	"errors"
	"sort"
	"sync"

	"github.com/chideraa89/first-attempt-ecommerce-site/notify"
	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// Sort keys. Featured leaves the catalog's natural order untouched.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// DefaultMaxPrice caps the price range when no maximum is given.
var DefaultMaxPrice = decimal.NewFromInt(10000)

// ErrPriceRange rejects a filter whose minimum price exceeds its maximum.
var ErrPriceRange = errors.New("minimum price cannot be greater than maximum price")

// Filter selects and orders a slice of the catalog.
type Filter struct {
	Category string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sort     string
}

func DefaultFilter() Filter {
	return Filter{
		Category: CategoryAll,
		MinPrice: decimal.Zero,
		MaxPrice: DefaultMaxPrice,
		Sort:     SortFeatured,
	}
}

// Apply derives the filtered, sorted product list. Sorting is stable, so
// ties keep the catalog order.
func Apply(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if p.Price.LessThan(f.MinPrice) || p.Price.GreaterThan(f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Price.LessThan(out[i].Price) })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Rating < out[i].Rating })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[j].ID < out[i].ID })
	}

	return out
}

// View is the stateful filtered view over a catalog. It keeps the last
// successfully applied filter; a rejected filter leaves it untouched.
type View struct {
	catalog  *Catalog
	notifier notify.Notifier

	mu     sync.Mutex
	filter Filter
}

func NewView(c *Catalog, n notify.Notifier) *View {
	return &View{catalog: c, notifier: n, filter: DefaultFilter()}
}

// SetFilter validates and applies a new filter. An inverted price range is
// rejected with a user-visible notification and the previous filter stays.
func (v *View) SetFilter(f Filter) error {
	if f.MinPrice.GreaterThan(f.MaxPrice) {
		v.notifier.Notify("Minimum price cannot be greater than maximum price")
		return ErrPriceRange
	}

	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
	return nil
}

// Filter returns the currently applied filter.
func (v *View) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Products derives the current filtered, sorted product list.
func (v *View) Products() []Product {
	return Apply(v.catalog.Products(), v.Filter())
}
