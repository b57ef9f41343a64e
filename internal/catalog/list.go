package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
)

// ListFilter narrows the storefront product listing. All fields are optional
// and combine with AND semantics.
type ListFilter struct {
	Query    string
	Brand    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f ListFilter) matches(p models.Product) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		needle := strings.ToLower(q)
		name := strings.ToLower(p.Name)
		brand := strings.ToLower(p.Brand)
		if !strings.Contains(name, needle) && !strings.Contains(brand, needle) {
			return false
		}
	}

	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price, ok := minVariantPrice(p)
		if !ok {
			return false
		}
		if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
			return false
		}
	}

	return true
}

// minVariantPrice returns the cheapest variant price, which is what the
// storefront shows on product cards and what price filters apply to.
func minVariantPrice(p models.Product) (decimal.Decimal, bool) {
	if len(p.Variants) == 0 {
		return decimal.Zero, false
	}
	min := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(min) {
			min = v.Price
		}
	}
	return min, true
}

func filterProducts(products []models.Product, filter ListFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.matches(p) {
			out = append(out, p)
		}
	}
	return out
}
