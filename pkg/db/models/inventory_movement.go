package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ohmasense/storefront-backend/pkg/enums"
)

// InventoryMovement is an append-only ledger entry recording a stock change
// and its cause. Rows are never updated or deleted.
type InventoryMovement struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VariantID    uuid.UUID          `gorm:"column:variant_id;type:uuid;not null" json:"variant_id"`
	MovementType enums.MovementType `gorm:"column:movement_type;not null" json:"movement_type"`
	Quantity     int                `gorm:"column:quantity;not null" json:"quantity"`
	Reason       string             `gorm:"column:reason" json:"reason"`
	OrderID      *uuid.UUID         `gorm:"column:order_id;type:uuid" json:"order_id,omitempty"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
