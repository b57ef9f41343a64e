package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/internal/inventory"
	"github.com/ohmasense/storefront-backend/internal/orders"
	"github.com/ohmasense/storefront-backend/pkg/db/models"
	"github.com/ohmasense/storefront-backend/pkg/enums"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Outcome reports what processing an event amounted to.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
)

type ServiceParams struct {
	OrdersRepo        orders.Repository
	InventoryRepo     inventory.Repository
	TransactionRunner txRunner
}

// Service reconciles completed checkout sessions onto their orders.
type Service struct {
	ordersRepo    orders.Repository
	inventoryRepo inventory.Repository
	txRunner      txRunner
}

func NewService(params ServiceParams) (*Service, error) {
	if params.OrdersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repo required")
	}
	if params.InventoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inventory repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &Service{
		ordersRepo:    params.OrdersRepo,
		inventoryRepo: params.InventoryRepo,
		txRunner:      params.TransactionRunner,
	}, nil
}

// HandleEvent routes a verified Stripe event. Only completed checkout
// sessions carry business meaning; every other kind is acknowledged
// untouched.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) (Outcome, error) {
	if event == nil || event.Data == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
		}
		return s.reconcileCompletedSession(ctx, &session)
	default:
		return OutcomeIgnored, nil
	}
}

// reconcileCompletedSession marks the matching order paid and appends one
// outbound inventory movement per line. The paid transition is a conditional
// update: when it changes no rows the order already left pending and the
// ledger write is skipped, so redelivered events cannot double-decrement.
func (s *Service) reconcileCompletedSession(ctx context.Context, session *stripe.CheckoutSession) (Outcome, error) {
	if session.ID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "checkout session id required")
	}

	order, err := s.ordersRepo.FindByCheckoutSessionID(ctx, session.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no order for checkout session %s", session.ID))
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order by session")
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	outcome := OutcomeDuplicate
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.ordersRepo.WithTx(tx)
		inventoryRepo := s.inventoryRepo.WithTx(tx)

		affected, err := ordersRepo.MarkPaidFromPending(ctx, order.ID, paymentIntentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
		}
		if affected == 0 {
			return nil
		}

		reason := fmt.Sprintf("Venta - Pedido #%s", order.ShortID())
		for _, line := range order.Lines {
			movement := &models.InventoryMovement{
				VariantID:    line.VariantID,
				MovementType: enums.MovementTypeOut,
				Quantity:     line.Quantity,
				Reason:       reason,
				OrderID:      &order.ID,
			}
			if err := inventoryRepo.CreateMovement(ctx, movement); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale movement")
			}
			if err := inventoryRepo.DecrementVariantStock(ctx, line.VariantID, line.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
		}

		outcome = OutcomeProcessed
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}
