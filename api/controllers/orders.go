package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ohmasense/storefront-backend/api/middleware"
	"github.com/ohmasense/storefront-backend/api/responses"
	"github.com/ohmasense/storefront-backend/api/validators"
	"github.com/ohmasense/storefront-backend/internal/cart"
	"github.com/ohmasense/storefront-backend/internal/orders"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
	"github.com/ohmasense/storefront-backend/pkg/logger"
)

type createOrderItemPayload struct {
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	VariantID    string          `json:"variant_id" validate:"required,uuid"`
	ProductName  string          `json:"product_name" validate:"required"`
	VariantLabel string          `json:"variant_label" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity" validate:"required,min=1"`
}

type createOrderPayload struct {
	CustomerEmail    string                   `json:"customer_email" validate:"required,email"`
	CustomerName     string                   `json:"customer_name" validate:"required"`
	CustomerWhatsapp string                   `json:"customer_whatsapp"`
	Note             *string                  `json:"note"`
	Items            []createOrderItemPayload `json:"items" validate:"required,min=1,dive"`
}

// OrderCreate submits the buyer's cart as a pending order and clears the
// cart once the order is stored.
func OrderCreate(svc orders.Service, carts cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload createOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := orders.CreateOrderInput{
			CustomerEmail:    payload.CustomerEmail,
			CustomerName:     payload.CustomerName,
			CustomerWhatsapp: payload.CustomerWhatsapp,
			Note:             payload.Note,
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID != "" {
			uid, err := uuid.Parse(userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
				return
			}
			input.UserID = &uid
		}

		for _, item := range payload.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			variantID, err := uuid.Parse(item.VariantID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
				return
			}
			input.Items = append(input.Items, orders.OrderItemInput{
				ProductID:    productID,
				VariantID:    variantID,
				ProductName:  item.ProductName,
				VariantLabel: item.VariantLabel,
				Price:        item.Price,
				Quantity:     item.Quantity,
			})
		}

		order, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if carts != nil && userID != "" {
			if err := carts.Clear(ctx, userID); err != nil && logg != nil {
				logg.Warn(ctx, "clearing cart after order intake failed")
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderList returns the authenticated buyer's order history.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
			return
		}

		list, err := svc.ListForUser(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrderGet returns one of the buyer's orders.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}
		userID, err := uuid.Parse(middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
			return
		}

		order, err := svc.GetForUser(ctx, orderID, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
