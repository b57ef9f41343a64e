package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
	"github.com/ohmasense/storefront-backend/pkg/enums"
)

// Repository manages persistence for orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, status *enums.OrderStatus, limit int) ([]models.Order, error)

	SetCheckoutSession(ctx context.Context, orderID uuid.UUID, sessionID string) error

	// CancelPending moves a pending order to cancelled and reports the number
	// of rows it changed. Zero means the order was not pending anymore.
	CancelPending(ctx context.Context, orderID uuid.UUID) (int64, error)

	// MarkPaidFromPending performs the guarded paid transition and reports the
	// number of rows it changed. Zero means the order was not pending anymore.
	MarkPaidFromPending(ctx context.Context, orderID uuid.UUID, paymentIntentID string) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
