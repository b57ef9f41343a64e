package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
	"github.com/ohmasense/storefront-backend/pkg/enums"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

type sqliteTxRunner struct {
	db *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	variants := `
CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  size_ml INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	movements := `
CREATE TABLE IF NOT EXISTS inventory_movements (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL,
  movement_type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  reason TEXT NOT NULL,
  order_id TEXT,
  created_at DATETIME
);`

	for _, stmt := range []string{variants, movements} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedVariant(t *testing.T, db *gorm.DB, stock int) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		SizeML:    50,
		Price:     decimal.NewFromInt(500),
		StockQty:  stock,
	}
	require.NoError(t, db.Create(variant).Error)
	return variant
}

func newInventoryService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), sqliteTxRunner{db: db})
	require.NoError(t, err)
	return svc
}

func TestRecordMovementValidates(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc := newInventoryService(t, db)
	ctx := context.Background()

	_, err := svc.RecordMovement(ctx, RecordMovementInput{
		VariantID: uuid.New(),
		Type:      enums.MovementType("bogus"),
		Quantity:  1,
		Reason:    "test",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.RecordMovement(ctx, RecordMovementInput{
		VariantID: uuid.New(),
		Type:      enums.MovementTypeOut,
		Quantity:  0,
		Reason:    "test",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRecordMovementPersists(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc := newInventoryService(t, db)
	ctx := context.Background()

	variant := seedVariant(t, db, 10)
	orderID := uuid.New()

	movement, err := svc.RecordMovement(ctx, RecordMovementInput{
		VariantID: variant.ID,
		Type:      enums.MovementTypeOut,
		Quantity:  2,
		Reason:    "Venta - Pedido #abc12345",
		OrderID:   &orderID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, movement.ID)

	listed, err := svc.ListByVariant(ctx, variant.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, enums.MovementTypeOut, listed[0].MovementType)
	require.NotNil(t, listed[0].OrderID)
	assert.Equal(t, orderID, *listed[0].OrderID)
}

func TestAdjustWritesMovementAndSetsCounter(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc := newInventoryService(t, db)
	ctx := context.Background()

	variant := seedVariant(t, db, 10)

	movement, err := svc.Adjust(ctx, variant.ID, 4, "merma")
	require.NoError(t, err)
	require.NotNil(t, movement)
	assert.Equal(t, enums.MovementTypeAdjustment, movement.MovementType)
	assert.Equal(t, 6, movement.Quantity)

	var stored models.ProductVariant
	require.NoError(t, db.Where("id = ?", variant.ID).First(&stored).Error)
	assert.Equal(t, 4, stored.StockQty)
}

func TestAdjustNoOpWhenQuantityUnchanged(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc := newInventoryService(t, db)
	ctx := context.Background()

	variant := seedVariant(t, db, 10)

	movement, err := svc.Adjust(ctx, variant.ID, 10, "recount")
	require.NoError(t, err)
	assert.Nil(t, movement)

	listed, err := svc.ListByVariant(ctx, variant.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAdjustUnknownVariant(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc := newInventoryService(t, db)

	_, err := svc.Adjust(context.Background(), uuid.New(), 5, "recount")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDecrementVariantStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	variant := seedVariant(t, db, 10)
	require.NoError(t, repo.DecrementVariantStock(ctx, variant.ID, 3))

	var stored models.ProductVariant
	require.NoError(t, db.Where("id = ?", variant.ID).First(&stored).Error)
	assert.Equal(t, 7, stored.StockQty)
}
