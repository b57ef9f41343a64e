package catalog

import (
	"github.com/shopspring/decimal"
)

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Brand       string
	Description *string
	BasePrice   decimal.Decimal
	IsActive    bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Brand       *string
	Description *string
	BasePrice   *decimal.Decimal
	IsActive    *bool
}

// CreateVariantInput holds the payload to add a size variant to a product.
type CreateVariantInput struct {
	SizeML   int
	Price    decimal.Decimal
	StockQty int
}

// UpdateVariantInput holds optional mutation values for a variant.
type UpdateVariantInput struct {
	SizeML *int
	Price  *decimal.Decimal
}

// AddImageInput attaches an image URL to a product at a display position.
type AddImageInput struct {
	ImageURL string
	Position int
}
