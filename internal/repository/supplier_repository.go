package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/procurement/internal/model"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) ListSuppliers(ctx context.Context, specialization string) ([]model.Supplier, error) {
	query := r.db.WithContext(ctx).Model(&model.Supplier{})
	if specialization != "" {
		filter, err := jsonArray(specialization)
		if err != nil {
			return nil, err
		}
		query = query.Where("specializations @> ?::jsonb", filter)
	}
	var suppliers []model.Supplier
	if err := query.Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SupplierRepository) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliers returns the suppliers that exist among ids; unknown ids are skipped.
func (r *SupplierRepository) GetSuppliers(ctx context.Context, ids []uuid.UUID) ([]model.Supplier, error) {
	if len(ids) == 0 {
		return []model.Supplier{}, nil
	}
	var suppliers []model.Supplier
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// UpdateSupplier writes the profile fields. Performance is only written through
// UpdatePerformance.
func (r *SupplierRepository) UpdateSupplier(ctx context.Context, supplier *model.Supplier) error {
	specializations, err := jsonArray(supplier.Specializations...)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", supplier.ID).Updates(map[string]interface{}{
		"name":            supplier.Name,
		"contact_person":  supplier.ContactPerson,
		"email":           supplier.Email,
		"phone":           supplier.Phone,
		"address":         supplier.Address,
		"tax_id":          supplier.TaxID,
		"specializations": specializations,
		"payment_terms":   supplier.PaymentTerms,
		"notes":           supplier.Notes,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SupplierRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Supplier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePerformance runs a read-modify-write of the supplier's performance
// record while holding a row lock, so concurrent updates for the same supplier
// are serialized.
func (r *SupplierRepository) UpdatePerformance(
	ctx context.Context,
	id uuid.UUID,
	mutate func(supplier *model.Supplier) error,
) (*model.Supplier, error) {
	var updated model.Supplier
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplier, err := lockSupplier(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(supplier); err != nil {
			return err
		}
		if err := savePerformance(tx, supplier); err != nil {
			return err
		}
		updated = *supplier
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func lockSupplier(tx *gorm.DB, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func savePerformance(tx *gorm.DB, supplier *model.Supplier) error {
	perf := supplier.Performance
	return tx.Model(&model.Supplier{}).Where("id = ?", supplier.ID).Updates(map[string]interface{}{
		"perf_total_orders":        perf.TotalOrders,
		"perf_on_time_deliveries":  perf.OnTimeDeliveries,
		"perf_quality_rejections":  perf.QualityRejections,
		"perf_average_price_ratio": perf.AveragePriceRatio,
		"perf_delivery_score":      perf.DeliveryScore,
		"perf_quality_score":       perf.QualityScore,
		"perf_price_score":         perf.PriceScore,
		"perf_payment_score":       perf.PaymentScore,
		"perf_total_score":         perf.TotalScore,
	}).Error
}
