package cart

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/store"
)

// CartService is the view-level entry point. Every call reloads the cart
// from the store before acting on it.
type CartService interface {
	GetCart(ctx context.Context) (*models.CartView, error)
	AddItem(ctx context.Context, req *models.AddItemRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, productID int64) (*models.CartView, error)
	SetBuyNow(ctx context.Context, req *models.AddItemRequest) (*models.CartLine, error)
}

type cartService struct {
	store   store.Store
	catalog catalog.CatalogService
}

func NewCartService(s store.Store, products catalog.CatalogService) CartService {
	return &cartService{store: s, catalog: products}
}

func (s *cartService) GetCart(ctx context.Context) (*models.CartView, error) {

	c := New(s.store)
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	return view(c), nil
}

func (s *cartService) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.CartView, error) {

	logger := middleware.LoggerFromContext(ctx)

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c := New(s.store)
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	err = c.AddOrMerge(ctx, *product, req.Quantity)
	metrics.RecordCartMutation("add", err)

	if err != nil {
		logger.Warn("Cart add rejected", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Cart updated", slog.Int64("productId", req.ProductID), slog.Int("quantity", req.Quantity))

	return view(c), nil
}

func (s *cartService) RemoveItem(ctx context.Context, productID int64) (*models.CartView, error) {

	c := New(s.store)
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	err := c.Remove(ctx, productID)
	metrics.RecordCartMutation("remove", err)

	if err != nil {
		return nil, err
	}

	return view(c), nil
}

func (s *cartService) SetBuyNow(ctx context.Context, req *models.AddItemRequest) (*models.CartLine, error) {

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	line, err := SetBuyNow(ctx, s.store, *product, req.Quantity)
	metrics.RecordCartMutation("buy_now", err)

	if err != nil {
		return nil, err
	}

	middleware.LoggerFromContext(ctx).Info("Buy-now item set", slog.Int64("productId", req.ProductID), slog.Int("quantity", req.Quantity))

	return line, nil
}

func view(c *Cart) *models.CartView {
	lines := c.Lines()

	count := 0
	for _, l := range lines {
		count += l.Quantity
	}

	return &models.CartView{Items: lines, Total: c.Total(), Count: count}
}
