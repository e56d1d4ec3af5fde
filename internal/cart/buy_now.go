package cart

import (
	"context"
	"fmt"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/store"
)

// SetBuyNow replaces the buy-now item. The cart is not touched.
func SetBuyNow(ctx context.Context, s store.Store, product models.Product, quantity int) (*models.CartLine, error) {

	if quantity < product.MinQuantity() {
		return nil, appErrors.AddValidationError("quantity", fmt.Sprintf("must be at least %d", product.MinQuantity()))
	}

	if quantity > product.Stock {
		return nil, stockExceeded(product, quantity)
	}

	line := models.CartLine{Product: product, Quantity: quantity}

	if err := s.Set(ctx, store.KeyBuyNow, line); err != nil {
		return nil, appErrors.StorageError("Failed to save buy-now item").WithError(err)
	}

	return &line, nil
}

// BuyNow reads the buy-now item. Absent or malformed data reports false.
func BuyNow(ctx context.Context, s store.Store) (*models.CartLine, bool, error) {

	line, found, err := store.Load[models.CartLine](ctx, s, store.KeyBuyNow)
	if err != nil {
		return nil, false, appErrors.StorageError("Failed to load buy-now item").WithError(err)
	}

	if !found {
		return nil, false, nil
	}

	return &line, true, nil
}

func ClearBuyNow(ctx context.Context, s store.Store) error {

	if err := s.Remove(ctx, store.KeyBuyNow); err != nil {
		return appErrors.StorageError("Failed to clear buy-now item").WithError(err)
	}

	return nil
}
