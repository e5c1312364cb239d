package scoring

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/procurement/internal/model"
)

const day = 24 * time.Hour

// Compare scores and ranks the responses to a quote request. Responses whose
// supplier is not in suppliers are kept with a nil supplier.
func Compare(
	request model.QuoteRequest,
	responses []model.QuoteResponse,
	suppliers []model.Supplier,
	latest *model.CurrencyRate,
	cfg Config,
) model.QuoteComparison {
	rates := ResolveRates(latest, cfg)

	bySupplier := make(map[uuid.UUID]model.Supplier, len(suppliers))
	for _, s := range suppliers {
		bySupplier[s.ID] = s
	}

	normalized := make([]decimal.Decimal, len(responses))
	var minPrice decimal.Decimal
	for i, resp := range responses {
		normalized[i] = NormalizeToTRY(resp.TotalPrice, resp.Currency, rates)
		if i == 0 || normalized[i].LessThan(minPrice) {
			minPrice = normalized[i]
		}
	}

	items := make([]model.ComparisonItem, 0, len(responses))
	for i, resp := range responses {
		item := model.ComparisonItem{
			Response:        resp,
			NormalizedPrice: normalized[i].InexactFloat64(),
		}
		if s, ok := bySupplier[resp.SupplierID]; ok {
			supplier := s
			item.Supplier = &supplier
		}
		item.Scores = scoreResponse(request, resp, item.Supplier, normalized[i], minPrice, cfg)
		items = append(items, item)
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Scores.Total > items[b].Scores.Total
	})

	return model.QuoteComparison{
		QuoteRequest:  request,
		Items:         items,
		CurrencyRates: rates,
	}
}

func scoreResponse(
	request model.QuoteRequest,
	resp model.QuoteResponse,
	supplier *model.Supplier,
	price, minPrice decimal.Decimal,
	cfg Config,
) model.QuoteScores {
	w := cfg.Comparison

	priceScore := decimal.NewFromFloat(w.Price)
	if minPrice.IsPositive() {
		priceScore = minPrice.Div(price).Mul(priceScore)
	}

	deliveryScore := decimal.NewFromFloat(DeliveryPoints(DaysLate(resp.DeliveryDate, request.Deadline), cfg))

	qualityScore := decimal.NewFromFloat(cfg.DefaultQuality)
	if supplier != nil {
		qualityScore = decimal.NewFromFloat(supplier.Performance.QualityScore).
			Mul(decimal.NewFromFloat(w.Quality)).
			Div(decimal.NewFromFloat(cfg.Performance.Quality))
	}

	paymentScore := decimal.NewFromFloat(PaymentTermsPoints(resp.PaymentTerms) * w.Payment / 10)

	total, parts := sumRounded(priceScore, deliveryScore, qualityScore, paymentScore)
	return model.QuoteScores{
		Price:    parts[0].InexactFloat64(),
		Delivery: parts[1].InexactFloat64(),
		Quality:  parts[2].InexactFloat64(),
		Payment:  parts[3].InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// DaysLate is the number of whole days between the deadline and the delivery
// date, floored; negative values mean early delivery.
func DaysLate(delivery, deadline time.Time) int {
	diff := delivery.Sub(deadline)
	days := int(diff / day)
	if diff < 0 && diff%day != 0 {
		days--
	}
	return days
}

// DeliveryPoints scores a delivery relative to the deadline. Early delivery
// earns a capped bonus on top of the base points; late delivery loses points
// linearly down to zero.
func DeliveryPoints(daysLate int, cfg Config) float64 {
	base := cfg.Comparison.Delivery
	if daysLate <= 0 {
		bonus := float64(-daysLate) * cfg.EarlyBonusPerDay
		if bonus > cfg.MaxEarlyBonus {
			bonus = cfg.MaxEarlyBonus
		}
		return base + bonus
	}
	score := base - float64(daysLate)*cfg.LatePenaltyPerDay
	if score < 0 {
		return 0
	}
	return score
}
