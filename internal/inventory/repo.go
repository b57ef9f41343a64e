package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
)

const movementListLimit = 100

// Repository manages the append-only movement ledger plus the stock counters
// it keeps in lockstep with.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateMovement(ctx context.Context, movement *models.InventoryMovement) error
	ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error)
	ListByVariant(ctx context.Context, variantID uuid.UUID) ([]models.InventoryMovement, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.InventoryMovement, error)

	FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error)
	SetVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error
	DecrementVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateMovement(ctx context.Context, movement *models.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error) {
	if limit <= 0 || limit > movementListLimit {
		limit = movementListLimit
	}
	var movements []models.InventoryMovement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *repository) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]models.InventoryMovement, error) {
	var movements []models.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.InventoryMovement, error) {
	var movements []models.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *repository) FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id = ?", variantID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) SetVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock_qty", qty).Error
}

func (r *repository) DecrementVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock_qty", gorm.Expr("stock_qty - ?", qty)).Error
}
