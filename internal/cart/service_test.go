package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewMemoryStore())
	require.NoError(t, err)
	return svc
}

func cartItem(variantID uuid.UUID, unitPrice float64, qty int) Item {
	return Item{
		VariantID:    variantID,
		ProductID:    uuid.New(),
		ProductName:  "Noir Intense",
		VariantLabel: "50ml",
		Price:        decimal.NewFromFloat(unitPrice),
		Quantity:     qty,
	}
}

func TestAddMergesByVariant(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v1 := uuid.New()
	v2 := uuid.New()

	_, err := svc.Add(ctx, "buyer", cartItem(v1, 500, 2))
	require.NoError(t, err)
	result, err := svc.Add(ctx, "buyer", cartItem(v2, 300, 1))
	require.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(1300)), "total %s", result.Total)

	result, err = svc.Add(ctx, "buyer", cartItem(v1, 500, 1))
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.Items[0].Quantity)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(1800)), "total %s", result.Total)
	assert.Equal(t, 4, result.ItemCount)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "buyer", cartItem(uuid.Nil, 500, 1))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Add(ctx, "buyer", cartItem(uuid.New(), 500, 0))
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v1 := uuid.New()
	_, err := svc.Add(ctx, "buyer", cartItem(v1, 500, 2))
	require.NoError(t, err)

	result, err := svc.SetQuantity(ctx, "buyer", v1, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.True(t, result.Total.IsZero())
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v1 := uuid.New()
	_, err := svc.Add(ctx, "buyer", cartItem(v1, 500, 2))
	require.NoError(t, err)

	result, err := svc.SetQuantity(ctx, "buyer", v1, 5)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 5, result.Items[0].Quantity)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(2500)))
}

func TestGetRoundTripsSavedCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	item := cartItem(uuid.New(), 850, 1)
	_, err := svc.Add(ctx, "buyer", item)
	require.NoError(t, err)

	result, err := svc.Get(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, item.VariantID, result.Items[0].VariantID)
	assert.True(t, result.Items[0].Price.Equal(item.Price))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", cartItem(uuid.New(), 500, 1))
	require.NoError(t, err)

	result, err := svc.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestClearEmptiesCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "buyer", cartItem(uuid.New(), 500, 1))
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "buyer"))

	result, err := svc.Get(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}
