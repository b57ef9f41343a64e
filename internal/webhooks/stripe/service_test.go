package stripewebhook

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/internal/inventory"
	"github.com/ohmasense/storefront-backend/internal/orders"
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

func setupWebhookTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  customer_email TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_whatsapp TEXT NOT NULL DEFAULT '',
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  note TEXT,
  stripe_checkout_session_id TEXT,
  stripe_payment_intent_id TEXT,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  variant_label TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  size_ml INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS inventory_movements (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL,
  movement_type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  reason TEXT NOT NULL,
  order_id TEXT,
  created_at DATETIME
);`}

	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type webhookFixture struct {
	db      *gorm.DB
	svc     *Service
	order   *models.Order
	variant *models.ProductVariant
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()

	db := setupWebhookTestDB(t)
	svc, err := NewService(ServiceParams{
		OrdersRepo:        orders.NewRepository(db),
		InventoryRepo:     inventory.NewRepository(db),
		TransactionRunner: sqliteTxRunner{db: db},
	})
	require.NoError(t, err)

	variant := &models.ProductVariant{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		SizeML:    50,
		Price:     decimal.NewFromInt(500),
		StockQty:  10,
	}
	require.NoError(t, db.Create(variant).Error)

	sessionID := "cs_test_fixture"
	order := &models.Order{
		ID:                      uuid.New(),
		CustomerEmail:           "buyer@example.com",
		CustomerName:            "Buyer",
		TotalAmount:             decimal.NewFromInt(1000),
		Status:                  enums.OrderStatusPending,
		StripeCheckoutSessionID: &sessionID,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderLine{
		ID:           uuid.New(),
		OrderID:      order.ID,
		ProductID:    variant.ProductID,
		VariantID:    variant.ID,
		ProductName:  "Noir Intense",
		VariantLabel: "50ml",
		Price:        decimal.NewFromInt(500),
		Quantity:     2,
	}).Error)

	return &webhookFixture{db: db, svc: svc, order: order, variant: variant}
}

func completedSessionEvent(sessionID, paymentIntentID string) *stripe.Event {
	raw, _ := json.Marshal(map[string]any{
		"id":             sessionID,
		"payment_intent": paymentIntentID,
	})
	return &stripe.Event{
		ID:   "evt_" + sessionID,
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestHandleEventMarksOrderPaidAndWritesLedger(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	outcome, err := f.svc.HandleEvent(ctx, completedSessionEvent("cs_test_fixture", "pi_test_1"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)

	var stored models.Order
	require.NoError(t, f.db.Where("id = ?", f.order.ID).First(&stored).Error)
	assert.Equal(t, enums.OrderStatusPaid, stored.Status)
	require.NotNil(t, stored.StripePaymentIntentID)
	assert.Equal(t, "pi_test_1", *stored.StripePaymentIntentID)

	var movements []models.InventoryMovement
	require.NoError(t, f.db.Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, enums.MovementTypeOut, movements[0].MovementType)
	assert.Equal(t, 2, movements[0].Quantity)
	assert.Equal(t, "Venta - Pedido #"+f.order.ShortID(), movements[0].Reason)
	require.NotNil(t, movements[0].OrderID)
	assert.Equal(t, f.order.ID, *movements[0].OrderID)

	var variant models.ProductVariant
	require.NoError(t, f.db.Where("id = ?", f.variant.ID).First(&variant).Error)
	assert.Equal(t, 8, variant.StockQty)
}

func TestHandleEventRedeliveryDoesNotDoubleDecrement(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	outcome, err := f.svc.HandleEvent(ctx, completedSessionEvent("cs_test_fixture", "pi_test_1"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)

	outcome, err = f.svc.HandleEvent(ctx, completedSessionEvent("cs_test_fixture", "pi_test_2"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)

	var movements []models.InventoryMovement
	require.NoError(t, f.db.Find(&movements).Error)
	assert.Len(t, movements, 1)

	var variant models.ProductVariant
	require.NoError(t, f.db.Where("id = ?", f.variant.ID).First(&variant).Error)
	assert.Equal(t, 8, variant.StockQty)

	var stored models.Order
	require.NoError(t, f.db.Where("id = ?", f.order.ID).First(&stored).Error)
	assert.Equal(t, "pi_test_1", *stored.StripePaymentIntentID)
}

func TestHandleEventIgnoresOtherEventKinds(t *testing.T) {
	f := newWebhookFixture(t)

	event := &stripe.Event{
		ID:   "evt_other",
		Type: stripe.EventTypePaymentIntentCreated,
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}
	outcome, err := f.svc.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)

	var stored models.Order
	require.NoError(t, f.db.Where("id = ?", f.order.ID).First(&stored).Error)
	assert.Equal(t, enums.OrderStatusPending, stored.Status)
}

func TestHandleEventUnknownSessionFails(t *testing.T) {
	f := newWebhookFixture(t)

	_, err := f.svc.HandleEvent(context.Background(), completedSessionEvent("cs_missing", "pi_x"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	var movements []models.InventoryMovement
	require.NoError(t, f.db.Find(&movements).Error)
	assert.Empty(t, movements)
}
