// Package checkout drives one checkout attempt through
// SOURCING -> PROFILE_REVIEW -> PAYMENT_SELECT -> COMMITTED, with ABORTED
// reachable from any non-terminal state.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/notify"
	"github.com/aaravmahajanofficial/storefront/internal/orders"
	"github.com/aaravmahajanofficial/storefront/internal/store"
	"github.com/google/uuid"
)

type Pipeline struct {
	store    store.Store
	ledger   *orders.Ledger
	notifier notify.Notifier
	redirect Redirect
	now      func() time.Time
}

func NewPipeline(s store.Store, ledger *orders.Ledger, notifier notify.Notifier, cfg *config.Checkout) *Pipeline {
	return &Pipeline{
		store:    s,
		ledger:   ledger,
		notifier: notifier,
		redirect: Redirect{To: cfg.RedirectTo, After: cfg.RedirectDelay, Seconds: cfg.RedirectDelay.Seconds()},
		now:      time.Now,
	}
}

// Begin sources the items for mode and loads the saved profile. An empty
// source returns the session still in SOURCING together with an EMPTY_SOURCE
// error.
func (p *Pipeline) Begin(ctx context.Context, mode Mode) (*Session, error) {

	now := p.now()
	sess := &Session{
		ID:            uuid.NewString(),
		Mode:          mode,
		State:         StateSourcing,
		PaymentMethod: models.DefaultPaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	items, err := p.source(ctx, mode)
	if err != nil {
		return sess, err
	}

	if len(items) == 0 {
		metrics.RecordCheckoutFailure(appErrors.ErrCodeEmptySource)
		return sess, emptySource(mode)
	}

	sess.setItems(items)

	profile, err := p.loadProfile(ctx)
	if err != nil {
		return sess, err
	}

	sess.Candidate = profile

	if fields := MissingFields(profile); len(fields) > 0 {
		sess.editProfile(nil)
	} else {
		sess.reviewProfile(profile)
	}

	return sess, nil
}

// SaveProfile validates and persists the profile. Invalid input keeps the
// session editable and reports every failing field.
func (p *Pipeline) SaveProfile(ctx context.Context, sess *Session, req models.SaveCandidateRequest) error {

	if !sess.State.sourced() {
		return invalidTransition(sess, "save the profile")
	}

	profile := CleanProfile(req)
	sess.Candidate = profile
	sess.UpdatedAt = p.now()

	if fields := ValidateProfile(profile); len(fields) > 0 {
		sess.editProfile(fields)

		if len(MissingFields(profile)) == 0 {
			metrics.RecordCheckoutFailure(appErrors.ErrCodeValidation)
			return appErrors.ValidationError("Please correct the customer details").WithFields(fields)
		}

		metrics.RecordCheckoutFailure(appErrors.ErrCodeIncompleteProfile)

		return appErrors.IncompleteProfileError("Please fill in all customer details").WithFields(fields)
	}

	if err := p.store.Set(ctx, store.KeyCandidate, profile); err != nil {
		return appErrors.StorageError("Failed to save customer details").WithError(err)
	}

	sess.reviewProfile(profile)

	return nil
}

// EditProfile re-opens the profile for editing.
func (p *Pipeline) EditProfile(sess *Session) error {

	if !sess.State.sourced() {
		return invalidTransition(sess, "edit the profile")
	}

	sess.editProfile(nil)
	sess.UpdatedAt = p.now()

	return nil
}

func (p *Pipeline) SelectPayment(sess *Session, method models.PaymentMethod) error {

	if !method.Valid() {
		return appErrors.AddValidationError("paymentMethod", "must be one of UPI, Card, COD")
	}

	if sess.State != StatePaymentSelect {
		return invalidTransition(sess, "select a payment method")
	}

	sess.PaymentMethod = method
	sess.UpdatedAt = p.now()

	return nil
}

// Commit re-reads the saved profile and the source, appends the order and
// removes the consumed source. The ledger append and the source removal are
// two separate writes.
func (p *Pipeline) Commit(ctx context.Context, sess *Session) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("sessionId", sess.ID))

	if !sess.State.sourced() {
		return nil, invalidTransition(sess, "place the order")
	}

	profile, err := p.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	if fields := MissingFields(profile); len(fields) > 0 {
		sess.Candidate = profile
		sess.editProfile(fields)
		sess.UpdatedAt = p.now()
		metrics.RecordCheckoutFailure(appErrors.ErrCodeIncompleteProfile)
		logger.Warn("Commit blocked by incomplete profile")

		return nil, appErrors.IncompleteProfileError("Please fill in all customer details").WithFields(fields)
	}

	items, err := p.source(ctx, sess.Mode)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		metrics.RecordCheckoutFailure(appErrors.ErrCodeEmptySource)
		logger.Warn("Commit blocked by empty source", slog.String("mode", string(sess.Mode)))

		return nil, emptySource(sess.Mode)
	}

	sess.setItems(items)

	order, err := p.ledger.Append(ctx, models.Order{
		Items:         items,
		Candidate:     profile,
		PaymentMethod: sess.PaymentMethod,
		TotalAmount:   sess.Totals.GrandTotal,
	})
	if err != nil {
		return nil, err
	}

	if err := p.consume(ctx, sess.Mode); err != nil {
		logger.Error("Order saved but source was not cleared",
			slog.Int64("orderId", order.ID),
			slog.String("error", err.Error()))
	}

	redirect := p.redirect
	sess.Candidate = profile
	sess.Order = &order
	sess.Redirect = &redirect
	sess.State = StateCommitted
	sess.Editing = false
	sess.FieldErrors = nil
	sess.UpdatedAt = p.now()

	metrics.RecordOrderCommitted(string(sess.Mode), order.TotalAmount)
	logger.Info("Order placed",
		slog.Int64("orderId", order.ID),
		slog.Float64("totalAmount", order.TotalAmount),
		slog.String("paymentMethod", string(order.PaymentMethod)))

	if err := p.notifier.OrderPlaced(ctx, order); err != nil {
		logger.Warn("Order confirmation not sent", slog.Int64("orderId", order.ID), slog.String("error", err.Error()))
	}

	return &order, nil
}

func (p *Pipeline) Abort(sess *Session) error {

	if sess.State.IsTerminal() {
		return invalidTransition(sess, "abort")
	}

	sess.State = StateAborted
	sess.UpdatedAt = p.now()

	return nil
}

func (p *Pipeline) source(ctx context.Context, mode Mode) ([]models.CartLine, error) {

	if mode == ModeBuyNow {
		line, found, err := cart.BuyNow(ctx, p.store)
		if err != nil || !found {
			return nil, err
		}
		return []models.CartLine{*line}, nil
	}

	c := cart.New(p.store)
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	return c.Lines(), nil
}

func (p *Pipeline) consume(ctx context.Context, mode Mode) error {

	if mode == ModeBuyNow {
		return cart.ClearBuyNow(ctx, p.store)
	}

	return cart.New(p.store).Clear(ctx)
}

func (p *Pipeline) loadProfile(ctx context.Context) (models.CandidateProfile, error) {

	profile, _, err := store.Load[models.CandidateProfile](ctx, p.store, store.KeyCandidate)
	if err != nil {
		return models.CandidateProfile{}, appErrors.StorageError("Failed to load customer details").WithError(err)
	}

	return profile, nil
}

func emptySource(mode Mode) *appErrors.AppError {
	if mode == ModeBuyNow {
		return appErrors.EmptySourceError("No items to place order").WithDetail("no buy-now item is saved")
	}

	return appErrors.EmptySourceError("No items to place order").WithDetail("cart is empty")
}

func invalidTransition(sess *Session, action string) *appErrors.AppError {
	return appErrors.InvalidTransitionError(fmt.Sprintf("Cannot %s in state %s", action, sess.State))
}
