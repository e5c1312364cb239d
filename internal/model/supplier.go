package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultPaymentTermsDays = 30

type SupplierPerformance struct {
	TotalOrders       int     `json:"total_orders" gorm:"column:total_orders"`
	OnTimeDeliveries  int     `json:"on_time_deliveries" gorm:"column:on_time_deliveries"`
	QualityRejections int     `json:"quality_rejections" gorm:"column:quality_rejections"`
	AveragePriceRatio float64 `json:"average_price_ratio" gorm:"column:average_price_ratio"`
	DeliveryScore     float64 `json:"delivery_score" gorm:"column:delivery_score"`
	QualityScore      float64 `json:"quality_score" gorm:"column:quality_score"`
	PriceScore        float64 `json:"price_score" gorm:"column:price_score"`
	PaymentScore      float64 `json:"payment_score" gorm:"column:payment_score"`
	TotalScore        float64 `json:"total_score" gorm:"column:total_score"`
}

// DefaultSupplierPerformance is the record a new supplier starts with.
func DefaultSupplierPerformance() SupplierPerformance {
	return SupplierPerformance{
		AveragePriceRatio: 1.0,
		DeliveryScore:     40.0,
		QualityScore:      30.0,
		PriceScore:        15.0,
		PaymentScore:      10.0,
		TotalScore:        95.0,
	}
}

type Supplier struct {
	ID              uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string              `json:"name"`
	ContactPerson   string              `json:"contact_person"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone,omitempty"`
	Address         string              `json:"address,omitempty"`
	TaxID           string              `json:"tax_id,omitempty"`
	Specializations []string            `json:"specializations" gorm:"type:jsonb;serializer:json"`
	PaymentTerms    int                 `json:"payment_terms"`
	Performance     SupplierPerformance `json:"performance" gorm:"embedded;embeddedPrefix:perf_"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierScores is the weighted breakdown of a supplier's performance.
type SupplierScores struct {
	DeliveryScore float64 `json:"delivery_score"`
	QualityScore  float64 `json:"quality_score"`
	PriceScore    float64 `json:"price_score"`
	PaymentScore  float64 `json:"payment_score"`
	TotalScore    float64 `json:"total_score"`
}
