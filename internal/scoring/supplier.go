package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nurpe/procurement/internal/model"
)

type PerformanceInput struct {
	TotalOrders       int     `json:"total_orders"`
	OnTimeDeliveries  int     `json:"on_time_deliveries"`
	QualityRejections int     `json:"quality_rejections"`
	AveragePriceRatio float64 `json:"average_price_ratio"`
	PaymentTerms      int     `json:"payment_terms"`
}

func (in PerformanceInput) Validate() error {
	switch {
	case in.TotalOrders < 0:
		return fmt.Errorf("%w: total_orders must not be negative", ErrInvalidInput)
	case in.OnTimeDeliveries < 0:
		return fmt.Errorf("%w: on_time_deliveries must not be negative", ErrInvalidInput)
	case in.QualityRejections < 0:
		return fmt.Errorf("%w: quality_rejections must not be negative", ErrInvalidInput)
	case in.OnTimeDeliveries > in.TotalOrders:
		return fmt.Errorf("%w: on_time_deliveries %d exceeds total_orders %d", ErrInvalidInput, in.OnTimeDeliveries, in.TotalOrders)
	case in.QualityRejections > in.TotalOrders:
		return fmt.Errorf("%w: quality_rejections %d exceeds total_orders %d", ErrInvalidInput, in.QualityRejections, in.TotalOrders)
	case in.AveragePriceRatio <= 0:
		return fmt.Errorf("%w: average_price_ratio must be positive", ErrInvalidInput)
	case in.PaymentTerms < 0:
		return fmt.Errorf("%w: payment_terms must not be negative", ErrInvalidInput)
	}
	return nil
}

// ComputeSupplierScore returns the weighted 0-100 breakdown for a performance record.
func ComputeSupplierScore(in PerformanceInput, cfg Config) (model.SupplierScores, error) {
	if err := in.Validate(); err != nil {
		return model.SupplierScores{}, err
	}
	w := cfg.Performance

	delivery := decimal.NewFromFloat(w.Delivery)
	quality := decimal.NewFromFloat(w.Quality)
	if in.TotalOrders > 0 {
		total := decimal.NewFromInt(int64(in.TotalOrders))
		onTimeRate := decimal.NewFromInt(int64(in.OnTimeDeliveries)).Div(total)
		rejectionRate := decimal.NewFromInt(int64(in.QualityRejections)).Div(total)
		delivery = onTimeRate.Mul(delivery)
		quality = decimal.NewFromInt(1).Sub(rejectionRate).Mul(quality)
	}
	price := decimal.NewFromFloat(priceRatioPoints(in.AveragePriceRatio) * w.Price / 20)
	payment := decimal.NewFromFloat(PaymentTermsPoints(in.PaymentTerms) * w.Payment / 10)

	total, parts := sumRounded(delivery, quality, price, payment)
	return model.SupplierScores{
		DeliveryScore: parts[0].InexactFloat64(),
		QualityScore:  parts[1].InexactFloat64(),
		PriceScore:    parts[2].InexactFloat64(),
		PaymentScore:  parts[3].InexactFloat64(),
		TotalScore:    total.InexactFloat64(),
	}, nil
}

// RecomputePerformance rescores a stored record. Counters are left untouched.
func RecomputePerformance(perf model.SupplierPerformance, paymentTerms int, cfg Config) (model.SupplierPerformance, error) {
	scores, err := ComputeSupplierScore(PerformanceInput{
		TotalOrders:       perf.TotalOrders,
		OnTimeDeliveries:  perf.OnTimeDeliveries,
		QualityRejections: perf.QualityRejections,
		AveragePriceRatio: perf.AveragePriceRatio,
		PaymentTerms:      paymentTerms,
	}, cfg)
	if err != nil {
		return perf, err
	}
	perf.DeliveryScore = scores.DeliveryScore
	perf.QualityScore = scores.QualityScore
	perf.PriceScore = scores.PriceScore
	perf.PaymentScore = scores.PaymentScore
	perf.TotalScore = scores.TotalScore
	return perf, nil
}

// RecordDelivery applies a delivery-completion event to a performance record
// and rescores it. An order without both delivery dates still counts towards
// total_orders but is neither on time nor late.
func RecordDelivery(perf model.SupplierPerformance, order model.Order, paymentTerms int, cfg Config) (model.SupplierPerformance, error) {
	if perf.AveragePriceRatio <= 0 {
		perf.AveragePriceRatio = 1.0
	}
	perf.TotalOrders++
	if onTime, known := order.DeliveredOnTime(); known && onTime {
		perf.OnTimeDeliveries++
	}
	return RecomputePerformance(perf, paymentTerms, cfg)
}
