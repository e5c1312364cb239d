package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/procurement/internal/model"
)

// ErrResponseNotOpen is returned when the quote response an order is placed
// from has already been approved or rejected.
var ErrResponseNotOpen = errors.New("quote response is no longer open")

type OrderFilter struct {
	Status     *model.OrderStatus
	SupplierID *uuid.UUID
}

// OrderStatusEffects tells the repository what else to persist alongside an
// order status change.
type OrderStatusEffects struct {
	SupplierChanged bool
	PartStatus      model.PartStatus
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateFromResponse inserts the order with the next SIP-YYYY-NNN code and
// approves the quote it was placed from. The response row stays locked until
// commit, so only one order can be placed per response.
func (r *OrderRepository) CreateFromResponse(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var response model.QuoteResponse
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", order.QuoteResponseID).First(&response).Error; err != nil {
			return err
		}
		if response.Status != model.QuoteResponseReceived {
			return ErrResponseNotOpen
		}

		if err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext('orders_code'))`).Error; err != nil {
			return err
		}
		code, err := nextCode(tx, &model.Order{}, "SIP", time.Now().Year())
		if err != nil {
			return err
		}
		order.Code = code

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.QuoteResponse{}).Where("id = ?", response.ID).
			Update("status", model.QuoteResponseApproved).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.QuoteRequest{}).Where("id = ?", response.QuoteRequestID).
			Update("status", model.QuoteStatusApproved).Error; err != nil {
			return err
		}
		return tx.Model(&model.Part{}).Where("id = ?", order.PartID).
			Update("status", model.PartStatusInProduction).Error
	})
}

func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	var orders []model.Order
	if err := query.Order("created_at DESC").Limit(1000).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ApplyStatus locks the order and its supplier, lets mutate change them, and
// persists the result in one transaction. supplier is nil when the supplier no
// longer exists.
func (r *OrderRepository) ApplyStatus(
	ctx context.Context,
	id uuid.UUID,
	mutate func(order *model.Order, supplier *model.Supplier) (OrderStatusEffects, error),
) (*model.Order, error) {
	var updated model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}

		supplier, err := lockSupplier(tx, order.SupplierID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			supplier, err = nil, nil
		}
		if err != nil {
			return err
		}

		effects, err := mutate(&order, supplier)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":          order.Status,
			"actual_delivery": order.ActualDelivery,
		}).Error; err != nil {
			return err
		}
		if effects.SupplierChanged && supplier != nil {
			if err := savePerformance(tx, supplier); err != nil {
				return err
			}
		}
		if effects.PartStatus != "" {
			if err := tx.Model(&model.Part{}).Where("id = ?", order.PartID).
				Update("status", effects.PartStatus).Error; err != nil {
				return err
			}
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func nextCode(tx *gorm.DB, table interface{}, prefix string, year int) (string, error) {
	var count int64
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	if err := tx.Model(table).Where("code LIKE ?", pattern).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, count+1), nil
}
