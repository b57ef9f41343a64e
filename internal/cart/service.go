package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

// Service exposes cart operations for an authenticated buyer. Lines merge by
// variant id; setting a quantity at or below zero removes the line.
type Service interface {
	Get(ctx context.Context, userID string) (Cart, error)
	Add(ctx context.Context, userID string, item Item) (Cart, error)
	SetQuantity(ctx context.Context, userID string, variantID uuid.UUID, quantity int) (Cart, error)
	Remove(ctx context.Context, userID string, variantID uuid.UUID) (Cart, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	store Store
}

// NewService wires a cart service over the provided store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, userID string) (Cart, error) {
	if userID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return buildCart(items), nil
}

func (s *service) Add(ctx context.Context, userID string, item Item) (Cart, error) {
	if userID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if item.VariantID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if item.Quantity <= 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if item.Price.IsNegative() {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	merged := false
	for i := range items {
		if items[i].VariantID == item.VariantID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return buildCart(items), nil
}

func (s *service) SetQuantity(ctx context.Context, userID string, variantID uuid.UUID, quantity int) (Cart, error) {
	if userID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if variantID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	next := items[:0]
	for _, existing := range items {
		if existing.VariantID == variantID {
			if quantity <= 0 {
				continue
			}
			existing.Quantity = quantity
		}
		next = append(next, existing)
	}

	if err := s.store.Save(ctx, userID, next); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return buildCart(next), nil
}

func (s *service) Remove(ctx context.Context, userID string, variantID uuid.UUID) (Cart, error) {
	return s.SetQuantity(ctx, userID, variantID, 0)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.store.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
