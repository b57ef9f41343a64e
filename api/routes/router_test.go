package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	webhookcontrollers "github.com/ohmasense/storefront-backend/api/controllers/webhooks"
	cartsvc "github.com/ohmasense/storefront-backend/internal/cart"
	catalogsvc "github.com/ohmasense/storefront-backend/internal/catalog"
	checkoutsvc "github.com/ohmasense/storefront-backend/internal/checkout"
	inventorysvc "github.com/ohmasense/storefront-backend/internal/inventory"
	ordersvc "github.com/ohmasense/storefront-backend/internal/orders"
	stripewebhook "github.com/ohmasense/storefront-backend/internal/webhooks/stripe"
	pkgauth "github.com/ohmasense/storefront-backend/pkg/auth"
	"github.com/ohmasense/storefront-backend/pkg/config"
	"github.com/ohmasense/storefront-backend/pkg/db/models"
	"github.com/ohmasense/storefront-backend/pkg/enums"
	"github.com/ohmasense/storefront-backend/pkg/logger"
)

type stubCatalogService struct {
	catalogsvc.Service
}

func (stubCatalogService) List(ctx context.Context, filter catalogsvc.ListFilter) ([]models.Product, error) {
	return nil, nil
}

func (stubCatalogService) Brands(ctx context.Context) ([]string, error) {
	return []string{"Ohmasense"}, nil
}

func (stubCatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

type stubOrdersService struct {
	ordersvc.Service
}

func (stubOrdersService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

func (stubOrdersService) ListAll(ctx context.Context, status *enums.OrderStatus, limit int) ([]models.Order, error) {
	return nil, nil
}

type stubInventoryService struct {
	inventorysvc.Service
}

func (stubInventoryService) ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error) {
	return nil, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) CreateSession(ctx context.Context, input checkoutsvc.CreateSessionInput) (string, error) {
	return "cs_test_stub", nil
}

type stubWebhookService struct{}

func (stubWebhookService) HandleEvent(ctx context.Context, event *stripe.Event) (stripewebhook.Outcome, error) {
	return stripewebhook.OutcomeIgnored, nil
}

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *memoryIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]string)
	}
	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.data[key] = fmt.Sprintf("%v", value)
	return true, nil
}

func (s *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("ohmasense:idempotency:%s:%s", scope, id)
}

func (s *memoryIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	cartService, err := cartsvc.NewService(cartsvc.NewMemoryStore())
	if err != nil {
		t.Fatalf("cart service setup: %v", err)
	}
	guard, err := stripewebhook.NewIdempotencyGuard(&memoryIdempotencyStore{}, time.Minute)
	if err != nil {
		t.Fatalf("guard setup: %v", err)
	}

	var webhookService webhookcontrollers.StripeWebhookService = stubWebhookService{}
	return NewRouter(
		cfg,
		logg,
		stubCatalogService{},
		cartService,
		stubOrdersService{},
		stubInventoryService{},
		stubCheckoutService{},
		nil, // no stripe client, signature checks always fail
		webhookService,
		guard,
		nil,
		nil,
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestLegacyHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/brands", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without token got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestCartRequiresAuth(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCustomer))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRequiresStaffRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	staff := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestWebhookRejectsUnsignedPayload(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/webhook", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError && resp.Code != http.StatusBadRequest {
		t.Fatalf("expected signature rejection, got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
