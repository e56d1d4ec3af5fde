// Package cart holds the cart aggregate and the buy-now singleton.
package cart

import (
	"context"
	"fmt"
	"slices"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	"github.com/aaravmahajanofficial/storefront/internal/store"
)

// Cart is an in-memory copy of the persisted cart. It only sees changes made
// elsewhere after Reload.
type Cart struct {
	store store.Store
	lines []models.CartLine
}

func New(s store.Store) *Cart {
	return &Cart{store: s}
}

// Reload discards the in-memory lines and re-reads them from the store.
func (c *Cart) Reload(ctx context.Context) error {

	lines, _, err := store.Load[[]models.CartLine](ctx, c.store, store.KeyCart)
	if err != nil {
		return appErrors.StorageError("Failed to load cart").WithError(err)
	}

	c.lines = lines

	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)

	return out
}

// Total is the undiscounted sum of price x quantity.
func (c *Cart) Total() float64 {
	return pricing.Subtotal(c.lines)
}

// AddOrMerge increases the quantity of the line for product, or inserts a new
// one. A merge keeps the snapshot taken when the line was first added. The
// resulting quantity is checked against product.Stock and nothing is written
// when it exceeds it.
func (c *Cart) AddOrMerge(ctx context.Context, product models.Product, quantity int) error {

	if quantity <= 0 {
		return appErrors.AddValidationError("quantity", "must be at least 1")
	}

	idx := slices.IndexFunc(c.lines, func(l models.CartLine) bool { return l.ID == product.ID })

	existing := 0
	if idx >= 0 {
		existing = c.lines[idx].Quantity
	} else if quantity < product.MinQuantity() {
		return appErrors.AddValidationError("quantity", fmt.Sprintf("must be at least %d", product.MinQuantity()))
	}

	// compare against the headroom so the sum below cannot overflow
	if quantity > product.Stock-existing {
		return stockExceeded(product, quantity).
			WithDetail(fmt.Sprintf("product %d: %d in cart, requested %d more, in stock %d", product.ID, existing, quantity, product.Stock))
	}

	resulting := existing + quantity

	updated := c.Lines()
	if idx >= 0 {
		updated[idx].Quantity = resulting
	} else {
		updated = append(updated, models.CartLine{Product: product, Quantity: quantity})
	}

	if err := c.store.Set(ctx, store.KeyCart, updated); err != nil {
		return appErrors.StorageError("Failed to update cart").WithError(err)
	}

	c.lines = updated

	return nil
}

// Remove deletes the line for productID. Removing an absent line is a no-op.
func (c *Cart) Remove(ctx context.Context, productID int64) error {

	idx := slices.IndexFunc(c.lines, func(l models.CartLine) bool { return l.ID == productID })
	if idx < 0 {
		return nil
	}

	updated := slices.Delete(c.Lines(), idx, idx+1)

	if err := c.store.Set(ctx, store.KeyCart, updated); err != nil {
		return appErrors.StorageError("Failed to update cart").WithError(err)
	}

	c.lines = updated

	return nil
}

func (c *Cart) Clear(ctx context.Context) error {

	if err := c.store.Remove(ctx, store.KeyCart); err != nil {
		return appErrors.StorageError("Failed to clear cart").WithError(err)
	}

	c.lines = nil

	return nil
}

func stockExceeded(product models.Product, quantity int) *appErrors.AppError {
	return appErrors.StockExceededError("Stock not available for this quantity").
		WithDetail(fmt.Sprintf("product %d: requested %d, in stock %d", product.ID, quantity, product.Stock)).
		WithFields(map[string]string{"quantity": fmt.Sprintf("must not exceed %d", product.Stock)})
}
