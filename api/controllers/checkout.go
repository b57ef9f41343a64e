package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ohmasense/storefront-backend/internal/checkout"
	"github.com/ohmasense/storefront-backend/pkg/logger"
)

type checkoutItemPayload struct {
	ProductName  string          `json:"productName"`
	VariantLabel string          `json:"variantLabel"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

type createCheckoutSessionPayload struct {
	OrderID       string                `json:"orderId"`
	Items         []checkoutItemPayload `json:"items"`
	CustomerEmail string                `json:"customerEmail"`
}

// CheckoutSessionCreate opens a hosted payment session for an order. The
// request and response shapes predate the response envelope and are kept
// exactly as the storefront client expects them.
func CheckoutSessionCreate(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		writeFailure := func(err error) {
			if logg != nil {
				logg.Error(ctx, "checkout session failed", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Error creating checkout session"})
		}

		var payload createCheckoutSessionPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeFailure(err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			writeFailure(err)
			return
		}

		input := checkout.CreateSessionInput{
			OrderID:       orderID,
			CustomerEmail: payload.CustomerEmail,
		}
		for _, item := range payload.Items {
			input.Items = append(input.Items, checkout.SessionLineItem{
				ProductName:  item.ProductName,
				VariantLabel: item.VariantLabel,
				Price:        item.Price,
				Quantity:     item.Quantity,
			})
		}

		sessionID, err := svc.CreateSession(ctx, input)
		if err != nil {
			writeFailure(err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"sessionId": sessionID})
	}
}
