package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ohmasense/storefront-backend/api/responses"
	"github.com/ohmasense/storefront-backend/internal/catalog"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
	"github.com/ohmasense/storefront-backend/pkg/logger"
)

// CatalogList returns active products with variants and images, optionally
// filtered by ?q=, ?brand=, ?min_price= and ?max_price=.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filter := catalog.ListFilter{
			Query: strings.TrimSpace(r.URL.Query().Get("q")),
			Brand: strings.TrimSpace(r.URL.Query().Get("brand")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("min_price")); raw != "" {
			value, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be numeric"))
				return
			}
			filter.MinPrice = &value
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("max_price")); raw != "" {
			value, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be numeric"))
				return
			}
			filter.MaxPrice = &value
		}

		products, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// CatalogGet returns one product with its variants and images.
func CatalogGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CatalogBrands lists the distinct brands the storefront can filter on.
func CatalogBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brands, err := svc.Brands(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}
