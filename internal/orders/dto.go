package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one submitted cart line, snapshotted onto the order.
type OrderItemInput struct {
	ProductID    uuid.UUID
	VariantID    uuid.UUID
	ProductName  string
	VariantLabel string
	Price        decimal.Decimal
	Quantity     int
}

// CreateOrderInput captures a submitted cart plus buyer contact details.
type CreateOrderInput struct {
	UserID           *uuid.UUID
	CustomerEmail    string
	CustomerName     string
	CustomerWhatsapp string
	Note             *string
	Items            []OrderItemInput
}
