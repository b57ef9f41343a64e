package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Variants carry the purchasable size/price
// configurations; BasePrice is display-only.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Brand       string           `gorm:"column:brand;not null" json:"brand"`
	Description *string          `gorm:"column:description" json:"description,omitempty"`
	BasePrice   decimal.Decimal  `gorm:"column:base_price;type:numeric(10,2);not null" json:"base_price"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product_variants"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product_images"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
