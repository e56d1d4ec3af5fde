// Package catalog holds the product list fetched once from the public product
// API, and serves search, filter, sort and per-product lookups over it.
package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingAsc  = "rating_asc"
	SortRatingDesc = "rating_desc"
)

// Source is the upstream the catalog is filled from.
type Source interface {
	FetchAll(ctx context.Context) ([]models.Product, error)
	FetchByID(ctx context.Context, id int64) (*models.Product, error)
}

type CatalogService interface {
	Load(ctx context.Context) error
	Loaded() bool
	Query(q models.ProductQuery) []models.Product
	Facets() models.Facets
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type catalogService struct {
	source Source

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
}

func NewCatalogService(source Source) CatalogService {
	return &catalogService{source: source}
}

// Load replaces the product list with a fresh fetch. On failure the previous
// list, empty at startup, is kept.
func (s *catalogService) Load(ctx context.Context) error {

	logger := middleware.LoggerFromContext(ctx)

	products, err := s.source.FetchAll(ctx)
	if err != nil {
		logger.Error("Failed to load catalog", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	metrics.SetCatalogSize(len(products))
	logger.Info("Catalog loaded", slog.Int("products", len(products)))

	return nil
}

func (s *catalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// Query applies the title search, category and brand filters, then the sort.
// The sort is stable so equal keys keep catalog order.
func (s *catalogService) Query(q models.ProductQuery) []models.Product {

	s.mu.RLock()
	out := make([]models.Product, 0, len(s.products))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Brand != "" && p.Brand != q.Brand {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	if cmp := comparator(q.SortBy); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}

	return out
}

func comparator(sortBy string) func(a, b models.Product) int {
	switch sortBy {
	case SortPriceAsc:
		return func(a, b models.Product) int { return compareFloat(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b models.Product) int { return compareFloat(b.Price, a.Price) }
	case SortRatingAsc:
		return func(a, b models.Product) int { return compareFloat(a.Rating, b.Rating) }
	case SortRatingDesc:
		return func(a, b models.Product) int { return compareFloat(b.Rating, a.Rating) }
	}

	return nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

// Facets lists the distinct non-empty categories and brands in first-seen
// order.
func (s *catalogService) Facets() models.Facets {

	s.mu.RLock()
	defer s.mu.RUnlock()

	facets := models.Facets{Categories: []string{}, Brands: []string{}}
	seenCategory := map[string]bool{}
	seenBrand := map[string]bool{}

	for _, p := range s.products {
		if p.Category != "" && !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			facets.Categories = append(facets.Categories, p.Category)
		}
		if p.Brand != "" && !seenBrand[p.Brand] {
			seenBrand[p.Brand] = true
			facets.Brands = append(facets.Brands, p.Brand)
		}
	}

	return facets
}

// GetProduct always asks the source so that the stock snapshot is current.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.source.FetchByID(ctx, id)
}
