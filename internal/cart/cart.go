package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one cart line, keyed by variant id. Price and naming are snapshots
// taken when the buyer added the line.
type Item struct {
	VariantID    uuid.UUID       `json:"variant_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	VariantLabel string          `json:"variant_label"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ImageURL     string          `json:"image_url,omitempty"`
}

// Cart is the materialized view returned to the storefront.
type Cart struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func buildCart(items []Item) Cart {
	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	if items == nil {
		items = []Item{}
	}
	return Cart{Items: items, Total: total, ItemCount: count}
}
