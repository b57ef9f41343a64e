package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
	"github.com/ohmasense/storefront-backend/pkg/enums"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

type orderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	SetCheckoutSession(ctx context.Context, orderID uuid.UUID, sessionID string) error
}

// SessionLineItem is one purchasable line forwarded to the payment provider.
type SessionLineItem struct {
	ProductName  string
	VariantLabel string
	Price        decimal.Decimal
	Quantity     int
}

// CreateSessionInput carries everything needed to open a hosted payment page.
type CreateSessionInput struct {
	OrderID       uuid.UUID
	CustomerEmail string
	Items         []SessionLineItem
}

// Service creates hosted payment sessions and correlates them with orders.
type Service interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (string, error)
}

type service struct {
	stripe        StripeSessionClient
	orders        orderStore
	clientBaseURL string
}

// NewService builds the checkout service.
func NewService(client StripeSessionClient, orders orderStore, clientBaseURL string) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("stripe client required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order store required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(clientBaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("client base url required")
	}
	return &service{stripe: client, orders: orders, clientBaseURL: baseURL}, nil
}

func (s *service) CreateSession(ctx context.Context, input CreateSessionInput) (string, error) {
	if input.OrderID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if len(input.Items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "at least one line item is required")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "line item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "line item price must not be negative")
		}
	}

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}
	if order.Status != enums.OrderStatusPending {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order is %s, checkout requires a pending order", order.Status))
	}

	params := s.buildParams(input)
	session, err := s.stripe.Create(ctx, params)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}

	if err := s.orders.SetCheckoutSession(ctx, input.OrderID, session.ID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session id")
	}
	return session.ID, nil
}

func (s *service) buildParams(input CreateSessionInput) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Items))
	for _, item := range input.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(enums.CurrencyMXN)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(lineItemName(item)),
				},
				UnitAmount: stripe.Int64(toMinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		CustomerEmail:      stripe.String(strings.TrimSpace(input.CustomerEmail)),
		SuccessURL:         stripe.String(fmt.Sprintf("%s/orders/%s", s.clientBaseURL, input.OrderID)),
		CancelURL:          stripe.String(s.clientBaseURL + "/checkout"),
	}
	params.AddMetadata("orderId", input.OrderID.String())
	return params
}

func lineItemName(item SessionLineItem) string {
	if item.VariantLabel == "" {
		return item.ProductName
	}
	return fmt.Sprintf("%s (%s)", item.ProductName, item.VariantLabel)
}

// toMinorUnits converts a MXN amount to centavos, rounding halves up the way
// the storefront always has.
func toMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
