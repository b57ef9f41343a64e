package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine captures the denormalized snapshot of each purchased item.
// Name, label and price are copied at submission time so later catalog edits
// do not affect past orders; VariantID remains for inventory movements.
type OrderLine struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	VariantID    uuid.UUID       `gorm:"column:variant_id;type:uuid;not null" json:"variant_id"`
	ProductName  string          `gorm:"column:product_name;not null" json:"product_name"`
	VariantLabel string          `gorm:"column:variant_label;not null" json:"variant_label"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// Subtotal is price multiplied by quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
