package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
	"github.com/nurpe/procurement/internal/scoring"
)

type OrderService struct {
	orders   OrderRepository
	quotes   QuoteRepository
	notifier Notifier
	metrics  Recorder
	scoring  scoring.Config
	log      zerolog.Logger
}

type OrderInput struct {
	QuoteResponseID  uuid.UUID
	Quantity         int
	ExpectedDelivery *time.Time
	Notes            string
}

type OrderStatusInput struct {
	Status         model.OrderStatus
	ActualDelivery *time.Time
}

func NewOrderService(orders OrderRepository, quotes QuoteRepository, notifier Notifier, metrics Recorder, cfg scoring.Config, log zerolog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		quotes:   quotes,
		notifier: notifier,
		metrics:  metrics,
		scoring:  cfg,
		log:      log,
	}
}

// Create places an order from an accepted quote. Supplier, part and prices are
// taken from the quote; the expected delivery defaults to the quoted date.
func (s *OrderService) Create(ctx context.Context, input OrderInput) (*model.Order, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	response, err := s.quotes.GetResponse(ctx, input.QuoteResponseID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, fmt.Errorf("%w: quote response %s does not exist", ErrInvalidInput, input.QuoteResponseID)
		}
		return nil, err
	}
	if response.Status != model.QuoteResponseReceived {
		return nil, fmt.Errorf("%w: quote response is already %s", ErrConflict, response.Status)
	}
	request, err := s.quotes.GetRequest(ctx, response.QuoteRequestID)
	if err != nil {
		return nil, translate(err)
	}
	if request.Status.Closed() {
		return nil, fmt.Errorf("%w: quote request is %s", ErrConflict, request.Status)
	}

	expected := input.ExpectedDelivery
	if expected == nil {
		quoted := response.DeliveryDate
		expected = &quoted
	}
	total := decimal.NewFromFloat(response.UnitPrice).
		Mul(decimal.NewFromInt(int64(input.Quantity))).
		Round(2)

	order := &model.Order{
		ID:               uuid.New(),
		QuoteResponseID:  response.ID,
		PartID:           request.PartID,
		SupplierID:       response.SupplierID,
		Quantity:         input.Quantity,
		UnitPrice:        response.UnitPrice,
		Currency:         response.Currency,
		TotalPrice:       total.InexactFloat64(),
		ExpectedDelivery: expected,
		Status:           model.OrderStatusPending,
		Notes:            input.Notes,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.orders.CreateFromResponse(ctx, order); err != nil {
		if errors.Is(err, repository.ErrResponseNotOpen) {
			return nil, fmt.Errorf("%w: quote response %s already has an order", ErrConflict, response.ID)
		}
		return nil, translate(err)
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("code", order.Code).
		Str("supplier_id", order.SupplierID.String()).
		Msg("order created")
	s.notifier.Notify(ctx, model.NotificationOrder,
		"Order created",
		fmt.Sprintf("Order %s was placed for %d units", order.Code, order.Quantity),
		"order", order.ID)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, *filter.Status)
	}
	return s.orders.ListOrders(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

// UpdateStatus moves an order forward. Reaching delivered records the delivery
// against the supplier's performance and completes the part, in the same
// transaction that holds the supplier row lock.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, input OrderStatusInput) (*model.Order, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, input.Status)
	}

	var rescored *model.SupplierPerformance
	order, err := s.orders.ApplyStatus(ctx, id, func(order *model.Order, supplier *model.Supplier) (repository.OrderStatusEffects, error) {
		var effects repository.OrderStatusEffects
		if !order.Status.CanTransitionTo(input.Status) {
			return effects, fmt.Errorf("%w: order cannot move from %s to %s", ErrConflict, order.Status, input.Status)
		}
		order.Status = input.Status
		if input.ActualDelivery != nil {
			order.ActualDelivery = input.ActualDelivery
		}
		if order.Status != model.OrderStatusDelivered {
			return effects, nil
		}

		effects.PartStatus = model.PartStatusCompleted
		if supplier == nil {
			return effects, nil
		}
		perf, err := scoring.RecordDelivery(supplier.Performance, *order, supplier.PaymentTerms, s.scoring)
		if err != nil {
			return effects, err
		}
		supplier.Performance = perf
		effects.SupplierChanged = true
		rescored = &perf
		return effects, nil
	})
	if err != nil {
		return nil, translate(err)
	}

	if order.Status == model.OrderStatusDelivered {
		event := s.log.Info().
			Str("order_id", order.ID.String()).
			Str("supplier_id", order.SupplierID.String())
		if rescored != nil {
			s.metrics.PerformanceRecomputed("delivery")
			event = event.
				Int("total_orders", rescored.TotalOrders).
				Int("on_time_deliveries", rescored.OnTimeDeliveries).
				Float64("total_score", rescored.TotalScore)
		}
		event.Msg("order delivered")
	}
	s.notifier.Notify(ctx, model.NotificationOrder,
		"Order status changed",
		fmt.Sprintf("Order %s is now %s", order.Code, order.Status),
		"order", order.ID)
	return order, nil
}
