package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ohmasense/storefront-backend/pkg/enums"
)

// Order is a buyer's purchase. Status moves pending->paid via the webhook
// reconciler, or pending->cancelled; paid orders are never reopened.
type Order struct {
	ID                      uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID                  *uuid.UUID        `gorm:"column:user_id;type:uuid" json:"user_id,omitempty"`
	CustomerEmail           string            `gorm:"column:customer_email;not null" json:"customer_email"`
	CustomerName            string            `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerWhatsapp        string            `gorm:"column:customer_whatsapp;not null" json:"customer_whatsapp"`
	TotalAmount             decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null" json:"total_amount"`
	Status                  enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Note                    *string           `gorm:"column:note" json:"note,omitempty"`
	StripeCheckoutSessionID *string           `gorm:"column:stripe_checkout_session_id" json:"stripe_checkout_session_id,omitempty"`
	StripePaymentIntentID   *string           `gorm:"column:stripe_payment_intent_id" json:"stripe_payment_intent_id,omitempty"`
	Lines                   []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	CreatedAt               time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// ShortID is the human-facing order reference used in inventory reasons and
// the admin UI.
func (o Order) ShortID() string {
	id := o.ID.String()
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
