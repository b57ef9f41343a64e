package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ohmasense/storefront-backend/api/responses"
	"github.com/ohmasense/storefront-backend/api/validators"
	inventorysvc "github.com/ohmasense/storefront-backend/internal/inventory"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
	"github.com/ohmasense/storefront-backend/pkg/logger"
)

type adjustStockPayload struct {
	NewQuantity int    `json:"new_quantity" validate:"gte=0"`
	Reason      string `json:"reason" validate:"required"`
}

// AdminInventoryAdjust sets a variant's counter to an absolute quantity and
// records the correction in the movement ledger.
func AdminInventoryAdjust(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}
		var payload adjustStockPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		movement, err := svc.Adjust(r.Context(), variantID, payload.NewQuantity, validators.SanitizeString(payload.Reason, 255))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if movement == nil {
			// already at the requested quantity
			responses.WriteSuccess(w, map[string]string{"status": "unchanged"})
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, movement)
	}
}

func AdminInventoryMovements(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		movements, err := svc.ListMovements(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, movements)
	}
}

func AdminInventoryVariantHistory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}
		movements, err := svc.ListByVariant(r.Context(), variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, movements)
	}
}
