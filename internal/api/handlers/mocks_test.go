package handlers_test

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCatalogService) Loaded() bool {
	return m.Called().Bool(0)
}

func (m *mockCatalogService) Query(q models.ProductQuery) []models.Product {
	return m.Called(q).Get(0).([]models.Product)
}

func (m *mockCatalogService) Facets() models.Facets {
	return m.Called().Get(0).(models.Facets)
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) GetCart(ctx context.Context) (*models.CartView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.CartView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, productID int64) (*models.CartView, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *mockCartService) SetBuyNow(ctx context.Context, req *models.AddItemRequest) (*models.CartLine, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartLine), args.Error(1)
}

type mockCheckoutService struct {
	mock.Mock
}

func (m *mockCheckoutService) session(args mock.Arguments) (*checkout.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *mockCheckoutService) Begin(ctx context.Context, mode checkout.Mode) (*checkout.Session, error) {
	return m.session(m.Called(ctx, mode))
}

func (m *mockCheckoutService) GetSession(ctx context.Context, id string) (*checkout.Session, error) {
	return m.session(m.Called(ctx, id))
}

func (m *mockCheckoutService) SaveCandidate(ctx context.Context, id string, req *models.SaveCandidateRequest) (*checkout.Session, error) {
	return m.session(m.Called(ctx, id, req))
}

func (m *mockCheckoutService) EditCandidate(ctx context.Context, id string) (*checkout.Session, error) {
	return m.session(m.Called(ctx, id))
}

func (m *mockCheckoutService) SelectPayment(ctx context.Context, id string, req *models.SelectPaymentRequest) (*checkout.Session, error) {
	return m.session(m.Called(ctx, id, req))
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, id string) (*checkout.Session, error) {
	return m.session(m.Called(ctx, id))
}

func (m *mockCheckoutService) Abort(ctx context.Context, id string) (*checkout.Session, error) {
	return m.session(m.Called(ctx, id))
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderSummary), args.Error(1)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, index int) (*models.Order, error) {
	args := m.Called(ctx, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
