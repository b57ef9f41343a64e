package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable size/price configuration of a product.
// StockQty is a plain counter; it is mutated only by the reconciliation flow
// and by admin adjustments, both of which also append a ledger movement.
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	SizeML    int             `gorm:"column:size_ml;not null" json:"size_ml"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	StockQty  int             `gorm:"column:stock_qty;not null;default:0" json:"stock_qty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Label renders the human-readable variant label shown on carts and orders.
func (v ProductVariant) Label() string {
	return fmt.Sprintf("%dml", v.SizeML)
}
