package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nurpe/procurement/internal/model"
)

type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// LatestRate returns the newest snapshot, or nil when none has been stored.
func (r *CurrencyRepository) LatestRate(ctx context.Context) (*model.CurrencyRate, error) {
	var rate model.CurrencyRate
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *CurrencyRepository) CreateRate(ctx context.Context, rate *model.CurrencyRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}
