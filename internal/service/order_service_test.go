package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
	"github.com/nurpe/procurement/internal/scoring"
)

type orderFixture struct {
	*quoteFixture
	orders   *fakeOrders
	svc      *OrderService
	response *model.QuoteResponse
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	qf := newQuoteFixture(t)
	request := qf.createRequest(t)
	response, err := qf.svc.SubmitResponse(context.Background(), responseInput(request.ID, qf.supplierA.ID, 1000, 0, 30))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	orders := newFakeOrders(qf.quotes, qf.suppliers, qf.parts)
	return &orderFixture{
		quoteFixture: qf,
		orders:       orders,
		svc:          NewOrderService(orders, qf.quotes, qf.notifier, qf.recorder, scoring.DefaultConfig(), zerolog.Nop()),
		response:     response,
	}
}

func (f *orderFixture) createOrder(t *testing.T) *model.Order {
	t.Helper()
	expected := testDeadline
	order, err := f.svc.Create(context.Background(), OrderInput{
		QuoteResponseID:  f.response.ID,
		Quantity:         10,
		ExpectedDelivery: &expected,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestOrderService_CreateFromResponse(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createOrder(t)

	if order.SupplierID != f.supplierA.ID || order.PartID != f.part.ID {
		t.Errorf("order not bound to response supplier and part: %+v", order)
	}
	if order.TotalPrice != 1000 || order.UnitPrice != 100 {
		t.Errorf("Expected unit 100 total 1000, got %.2f and %.2f", order.UnitPrice, order.TotalPrice)
	}
	if order.Status != model.OrderStatusPending || order.Code == "" {
		t.Errorf("unexpected order state %+v", order)
	}

	part, _ := f.parts.GetPart(context.Background(), f.part.ID)
	if part.Status != model.PartStatusInProduction {
		t.Errorf("Expected part in_production, got %s", part.Status)
	}
	resp, _ := f.quotes.GetResponse(context.Background(), f.response.ID)
	if resp.Status != model.QuoteResponseApproved {
		t.Errorf("Expected response approved, got %s", resp.Status)
	}
	if f.notifier.count(model.NotificationOrder) != 1 {
		t.Errorf("Expected an order notification")
	}

	_, err := f.svc.Create(context.Background(), OrderInput{QuoteResponseID: f.response.ID, Quantity: 1})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict when ordering an approved quote twice, got %v", err)
	}
}

// staleQuotes serves a response as it was read before another order approved it.
type staleQuotes struct {
	*fakeQuotes
	snapshot model.QuoteResponse
}

func (s *staleQuotes) GetResponse(_ context.Context, id uuid.UUID) (*model.QuoteResponse, error) {
	if id != s.snapshot.ID {
		return nil, errors.New("unexpected response lookup")
	}
	copied := s.snapshot
	return &copied, nil
}

func TestOrderService_CreateRechecksResponseInTransaction(t *testing.T) {
	f := newOrderFixture(t)
	snapshot, err := f.quotes.GetResponse(context.Background(), f.response.ID)
	if err != nil {
		t.Fatalf("get response: %v", err)
	}
	f.createOrder(t)

	// The request is approved now; reopen it so only the response status guards.
	f.quotes.mu.Lock()
	f.quotes.requests[f.response.QuoteRequestID].Status = model.QuoteStatusReceived
	f.quotes.mu.Unlock()

	stale := NewOrderService(f.orders, &staleQuotes{fakeQuotes: f.quotes, snapshot: *snapshot},
		f.notifier, f.recorder, scoring.DefaultConfig(), zerolog.Nop())
	_, err = stale.Create(context.Background(), OrderInput{QuoteResponseID: f.response.ID, Quantity: 5})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	orders, _ := f.orders.ListOrders(context.Background(), repository.OrderFilter{})
	if len(orders) != 1 {
		t.Errorf("Expected 1 order, got %d", len(orders))
	}
}

func TestOrderService_ConcurrentCreateFromSameResponse(t *testing.T) {
	f := newOrderFixture(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(context.Background(), OrderInput{QuoteResponseID: f.response.ID, Quantity: 1})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrConflict):
			t.Errorf("Expected ErrConflict for a losing attempt, got %v", err)
		}
	}
	if created != 1 {
		t.Errorf("Expected exactly 1 order, got %d", created)
	}
}

func TestOrderService_CreateValidation(t *testing.T) {
	f := newOrderFixture(t)
	tests := []struct {
		name  string
		input OrderInput
	}{
		{"zero quantity", OrderInput{QuoteResponseID: f.response.ID}},
		{"unknown response", OrderInput{QuoteResponseID: uuid.New(), Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestOrderService_DeliveryUpdatesSupplierPerformance(t *testing.T) {
	tests := []struct {
		name       string
		actual     *time.Time
		wantOnTime int
		wantTotal  float64
	}{
		{"on time", timePtr(testDeadline.AddDate(0, 0, -1)), 1, 90},
		{"late", timePtr(testDeadline.AddDate(0, 0, 3)), 0, 50},
		{"no actual date", nil, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			order := f.createOrder(t)
			ctx := context.Background()

			for _, status := range []model.OrderStatus{model.OrderStatusConfirmed, model.OrderStatusShipped} {
				if _, err := f.svc.UpdateStatus(ctx, order.ID, OrderStatusInput{Status: status}); err != nil {
					t.Fatalf("move to %s: %v", status, err)
				}
			}
			supplier, _ := f.suppliers.GetSupplier(ctx, f.supplierA.ID)
			if supplier.Performance.TotalOrders != 0 {
				t.Fatalf("performance must not change before delivery")
			}

			updated, err := f.svc.UpdateStatus(ctx, order.ID, OrderStatusInput{Status: model.OrderStatusDelivered, ActualDelivery: tt.actual})
			if err != nil {
				t.Fatalf("deliver: %v", err)
			}
			if updated.Status != model.OrderStatusDelivered {
				t.Errorf("Expected delivered, got %s", updated.Status)
			}

			supplier, _ = f.suppliers.GetSupplier(ctx, f.supplierA.ID)
			perf := supplier.Performance
			if perf.TotalOrders != 1 || perf.OnTimeDeliveries != tt.wantOnTime {
				t.Errorf("Expected 1 order with %d on time, got %d/%d", tt.wantOnTime, perf.TotalOrders, perf.OnTimeDeliveries)
			}
			if perf.TotalScore != tt.wantTotal {
				t.Errorf("Expected total score %.1f, got %.1f", tt.wantTotal, perf.TotalScore)
			}
			part, _ := f.parts.GetPart(ctx, f.part.ID)
			if part.Status != model.PartStatusCompleted {
				t.Errorf("Expected part completed, got %s", part.Status)
			}
			if f.recorder.recomputed["delivery"] != 1 {
				t.Errorf("Expected one delivery recomputation, got %d", f.recorder.recomputed["delivery"])
			}

			_, err = f.svc.UpdateStatus(ctx, order.ID, OrderStatusInput{Status: model.OrderStatusDelivered})
			if !errors.Is(err, ErrConflict) {
				t.Errorf("Expected ErrConflict on repeated delivery, got %v", err)
			}
			supplier, _ = f.suppliers.GetSupplier(ctx, f.supplierA.ID)
			if supplier.Performance.TotalOrders != 1 {
				t.Errorf("repeated delivery must not count twice")
			}
		})
	}
}

func TestOrderService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name  string
		steps []model.OrderStatus
		want  error
	}{
		{"skip ahead", []model.OrderStatus{model.OrderStatusShipped}, nil},
		{"cancel pending", []model.OrderStatus{model.OrderStatusCancelled}, nil},
		{"backward", []model.OrderStatus{model.OrderStatusShipped, model.OrderStatusConfirmed}, ErrConflict},
		{"after cancel", []model.OrderStatus{model.OrderStatusCancelled, model.OrderStatusConfirmed}, ErrConflict},
		{"unknown", []model.OrderStatus{"lost"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			order := f.createOrder(t)
			var err error
			for _, status := range tt.steps {
				if _, err = f.svc.UpdateStatus(context.Background(), order.ID, OrderStatusInput{Status: status}); err != nil {
					break
				}
			}
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOrderService_DeliveryWithDeletedSupplier(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	if err := f.suppliers.DeleteSupplier(ctx, f.supplierA.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, order.ID, OrderStatusInput{Status: model.OrderStatusDelivered}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	part, _ := f.parts.GetPart(ctx, f.part.ID)
	if part.Status != model.PartStatusCompleted {
		t.Errorf("Expected part completed, got %s", part.Status)
	}
	if f.recorder.recomputed["delivery"] != 0 {
		t.Errorf("no supplier should have been rescored")
	}
}

func TestOrderService_GetUnknown(t *testing.T) {
	f := newOrderFixture(t)
	if _, err := f.svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
