// Package orders is the append-only, user-cancelable order ledger.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/store"
)

type Ledger struct {
	store store.Store
	now   func() time.Time
}

func NewLedger(s store.Store) *Ledger {
	return &Ledger{store: s, now: time.Now}
}

// WithClock replaces the time source used for order ids and dates.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now

	return l
}

// List returns every order in creation order. Entries that no longer decode
// are skipped and logged, so a single bad record cannot take the rest of the
// history with it on the next write. A ledger that is not a list is empty.
func (l *Ledger) List(ctx context.Context) ([]models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	var blob json.RawMessage
	found, err := l.store.Get(ctx, store.KeyOrders, &blob)
	if err != nil {
		return nil, appErrors.StorageError("Failed to load orders").WithError(err)
	}

	orders := []models.Order{}
	if !found || string(blob) == "null" {
		return orders, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(blob, &entries); err != nil {
		logger.Error("Order ledger is not a list, it will be replaced on the next write",
			slog.String("error", err.Error()))

		return orders, nil
	}

	for i, entry := range entries {
		order, err := store.Unmarshal[models.Order](entry)
		if err != nil {
			logger.Error("Dropping unreadable order from the ledger",
				slog.Int("position", i),
				slog.String("error", err.Error()))

			continue
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// Append stamps order with an id and date and adds it at the end. Ids are
// unix milliseconds, bumped past the last id when the clock has not advanced.
func (l *Ledger) Append(ctx context.Context, order models.Order) (models.Order, error) {

	orders, err := l.List(ctx)
	if err != nil {
		return models.Order{}, err
	}

	now := l.now()
	order.ID = nextID(orders, now)
	order.OrderDate = now

	if err := l.store.Set(ctx, store.KeyOrders, append(orders, order)); err != nil {
		return models.Order{}, appErrors.StorageError("Failed to save order").WithError(err)
	}

	return order, nil
}

// Cancel removes the order at index, keeping the relative order of the rest.
func (l *Ledger) Cancel(ctx context.Context, index int) (models.Order, error) {

	orders, err := l.List(ctx)
	if err != nil {
		return models.Order{}, err
	}

	if index < 0 || index >= len(orders) {
		return models.Order{}, appErrors.NotFoundError("Order not found").
			WithDetail(fmt.Sprintf("index %d out of range [0, %d)", index, len(orders)))
	}

	removed := orders[index]
	orders = slices.Delete(orders, index, index+1)

	if err := l.store.Set(ctx, store.KeyOrders, orders); err != nil {
		return models.Order{}, appErrors.StorageError("Failed to update orders").WithError(err)
	}

	return removed, nil
}

func nextID(orders []models.Order, now time.Time) int64 {
	id := now.UnixMilli()

	for _, o := range orders {
		if o.ID >= id {
			id = o.ID + 1
		}
	}

	return id
}
