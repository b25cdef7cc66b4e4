// Package catalog holds the static product list and the filtered, sorted
// view derived from it. Products are immutable reference data; the only
// state here is the currently applied filter.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed products.json
var productsJSON []byte

// Product is one catalog entry as supplied by the shop's static data.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	Features      []string        `json:"features"`
	Stock         int             `json:"stock"`
}

// Discount is the rounded percentage off the original price, as shown on
// product badges.
func (p Product) Discount() int {
	if p.OriginalPrice.IsZero() {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

var categoryNames = map[string]string{
	"electronics": "Electronics",
	"fashion":     "Fashion",
	"home":        "Home & Garden",
	"phones":      "Phones & Tablets",
	"computing":   "Computing",
}

// CategoryName maps a category key to its display name, falling back to the
// key itself.
func CategoryName(category string) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return category
}

type Catalog struct {
	products []Product
	byID     map[int]Product
}

func New(products []Product) *Catalog {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Load builds the catalog from the embedded product data.
func Load() (*Catalog, error) {
	return parse(productsJSON)
}

// LoadFile builds the catalog from an external JSON file, for shops that
// supply their own product data.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}
	return parse(b)
}

func parse(b []byte) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	return New(products), nil
}

// Products returns the full catalog in its natural order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks a product up by id.
func (c *Catalog) Product(id int) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Search keeps the products whose name or category display name contains the
// term, case-insensitively. An empty term keeps everything.
func Search(products []Product, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(CategoryName(p.Category)), term) {
			out = append(out, p)
		}
	}
	return out
}
