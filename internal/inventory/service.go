package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
	"github.com/ohmasense/storefront-backend/pkg/enums"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records inventory movements and staff stock adjustments.
type Service interface {
	RecordMovement(ctx context.Context, input RecordMovementInput) (*models.InventoryMovement, error)
	Adjust(ctx context.Context, variantID uuid.UUID, newQty int, reason string) (*models.InventoryMovement, error)
	ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error)
	ListByVariant(ctx context.Context, variantID uuid.UUID) ([]models.InventoryMovement, error)
}

// RecordMovementInput captures the immutable data one ledger entry requires.
type RecordMovementInput struct {
	VariantID uuid.UUID
	Type      enums.MovementType
	Quantity  int
	Reason    string
	OrderID   *uuid.UUID
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires an inventory service with the provided repository.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) RecordMovement(ctx context.Context, input RecordMovementInput) (*models.InventoryMovement, error) {
	if input.VariantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid movement type %q", input.Type))
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement quantity must be positive")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement reason is required")
	}

	movement := &models.InventoryMovement{
		VariantID:    input.VariantID,
		MovementType: input.Type,
		Quantity:     input.Quantity,
		Reason:       strings.TrimSpace(input.Reason),
		OrderID:      input.OrderID,
	}
	if err := s.repo.CreateMovement(ctx, movement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create movement")
	}
	return movement, nil
}

// Adjust sets a variant's stock counter to newQty and writes the matching
// adjustment movement in the same transaction, so ledger and counter stay
// reconciled.
func (s *service) Adjust(ctx context.Context, variantID uuid.UUID, newQty int, reason string) (*models.InventoryMovement, error) {
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if newQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment reason is required")
	}

	var movement *models.InventoryMovement
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		variant, err := repo.FindVariant(ctx, variantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find variant")
		}

		delta := newQty - variant.StockQty
		if delta == 0 {
			return nil
		}

		qty := delta
		if qty < 0 {
			qty = -qty
		}
		movement = &models.InventoryMovement{
			VariantID:    variantID,
			MovementType: enums.MovementTypeAdjustment,
			Quantity:     qty,
			Reason:       strings.TrimSpace(reason),
		}
		if err := repo.CreateMovement(ctx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create movement")
		}
		if err := repo.SetVariantStock(ctx, variantID, newQty); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set stock")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *service) ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error) {
	movements, err := s.repo.ListMovements(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	return movements, nil
}

func (s *service) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]models.InventoryMovement, error) {
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	movements, err := s.repo.ListByVariant(ctx, variantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	return movements, nil
}
