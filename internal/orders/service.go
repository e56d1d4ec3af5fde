package orders

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type OrderService interface {
	ListOrders(ctx context.Context) ([]models.OrderSummary, error)
	CancelOrder(ctx context.Context, index int) (*models.Order, error)
}

type orderService struct {
	ledger *Ledger
}

func NewOrderService(ledger *Ledger) OrderService {
	return &orderService{ledger: ledger}
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {

	orders, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	return Summaries(orders), nil
}

func (s *orderService) CancelOrder(ctx context.Context, index int) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	removed, err := s.ledger.Cancel(ctx, index)
	if err != nil {
		logger.Warn("Order cancel failed", slog.Int("index", index), slog.String("error", err.Error()))
		return nil, err
	}

	metrics.RecordOrderCancelled()
	logger.Info("Order cancelled", slog.Int("index", index), slog.Int64("orderId", removed.ID))

	return &removed, nil
}
