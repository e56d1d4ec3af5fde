package checkout

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type CheckoutService interface {
	Begin(ctx context.Context, mode Mode) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	SaveCandidate(ctx context.Context, id string, req *models.SaveCandidateRequest) (*Session, error)
	EditCandidate(ctx context.Context, id string) (*Session, error)
	SelectPayment(ctx context.Context, id string, req *models.SelectPaymentRequest) (*Session, error)
	PlaceOrder(ctx context.Context, id string) (*Session, error)
	Abort(ctx context.Context, id string) (*Session, error)
}

type checkoutService struct {
	pipeline *Pipeline
	registry *Registry
}

func NewCheckoutService(pipeline *Pipeline, registry *Registry) CheckoutService {
	return &checkoutService{pipeline: pipeline, registry: registry}
}

// Begin only registers sessions that got past SOURCING.
func (s *checkoutService) Begin(ctx context.Context, mode Mode) (*Session, error) {

	logger := middleware.LoggerFromContext(ctx)

	sess, err := s.pipeline.Begin(ctx, mode)
	if err != nil {
		logger.Warn("Checkout could not start", slog.String("mode", string(mode)), slog.String("error", err.Error()))
		return nil, err
	}

	s.registry.Add(sess)

	logger.Info("Checkout started",
		slog.String("sessionId", sess.ID),
		slog.String("mode", string(mode)),
		slog.String("state", sess.State.String()))

	snapshot := sess.Snapshot()

	return &snapshot, nil
}

func (s *checkoutService) GetSession(_ context.Context, id string) (*Session, error) {
	return s.apply(id, func(*Session) error { return nil })
}

func (s *checkoutService) SaveCandidate(ctx context.Context, id string, req *models.SaveCandidateRequest) (*Session, error) {
	return s.apply(id, func(sess *Session) error {
		return s.pipeline.SaveProfile(ctx, sess, *req)
	})
}

func (s *checkoutService) EditCandidate(_ context.Context, id string) (*Session, error) {
	return s.apply(id, s.pipeline.EditProfile)
}

func (s *checkoutService) SelectPayment(_ context.Context, id string, req *models.SelectPaymentRequest) (*Session, error) {
	return s.apply(id, func(sess *Session) error {
		return s.pipeline.SelectPayment(sess, req.PaymentMethod)
	})
}

func (s *checkoutService) PlaceOrder(ctx context.Context, id string) (*Session, error) {
	return s.apply(id, func(sess *Session) error {
		_, err := s.pipeline.Commit(ctx, sess)
		return err
	})
}

func (s *checkoutService) Abort(ctx context.Context, id string) (*Session, error) {

	sess, err := s.apply(id, s.pipeline.Abort)
	if err == nil {
		middleware.LoggerFromContext(ctx).Info("Checkout aborted", slog.String("sessionId", id))
	}

	return sess, err
}

// apply runs step under the session lock and returns a snapshot taken after
// it, alongside step's error. A failed step can still have moved the session,
// e.g. back to PROFILE_REVIEW.
func (s *checkoutService) apply(id string, step func(*Session) error) (*Session, error) {

	var (
		snapshot Session
		stepErr  error
	)

	found := s.registry.With(id, func(sess *Session) {
		stepErr = step(sess)
		snapshot = sess.Snapshot()
	})

	if !found {
		return nil, appErrors.NotFoundError("Checkout session not found").WithDetail(id)
	}

	return &snapshot, stepErr
}
