package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusConfirmed    OrderStatus = "confirmed"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

var orderSequence = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	return s.position() >= 0
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo allows moving forward along the fulfilment sequence, skipping
// steps if needed, and cancelling any order that is not yet terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() || s == next {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	from, to := s.position(), next.position()
	return from >= 0 && to > from
}

func (s OrderStatus) position() int {
	for i, status := range orderSequence {
		if status == s {
			return i
		}
	}
	return -1
}

type Order struct {
	ID               uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Code             string      `json:"code"`
	QuoteResponseID  uuid.UUID   `json:"quote_response_id" gorm:"type:uuid"`
	PartID           uuid.UUID   `json:"part_id" gorm:"type:uuid"`
	SupplierID       uuid.UUID   `json:"supplier_id" gorm:"type:uuid"`
	Quantity         int         `json:"quantity"`
	UnitPrice        float64     `json:"unit_price"`
	Currency         Currency    `json:"currency"`
	TotalPrice       float64     `json:"total_price"`
	ExpectedDelivery *time.Time  `json:"expected_delivery"`
	ActualDelivery   *time.Time  `json:"actual_delivery"`
	Status           OrderStatus `json:"status"`
	Notes            string      `json:"notes,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// DeliveredOnTime reports whether the order arrived no later than expected.
// The second result is false when either date is missing.
func (o Order) DeliveredOnTime() (onTime bool, known bool) {
	if o.ActualDelivery == nil || o.ExpectedDelivery == nil {
		return false, false
	}
	return !o.ActualDelivery.After(*o.ExpectedDelivery), true
}
