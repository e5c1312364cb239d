// Package scoring ranks supplier quotes and scores supplier performance.
// Everything here is pure: callers load records, pass them in, and persist
// whatever comes back.
package scoring

import "errors"

var ErrInvalidInput = errors.New("invalid scoring input")

// Weights are the maximum points of each axis.
type Weights struct {
	Price    float64
	Delivery float64
	Quality  float64
	Payment  float64
}

// Config is the constant configuration both engines run with.
type Config struct {
	// Supplier performance axes: delivery 40, quality 30, price 20, payment 10.
	Performance Weights
	// Quote comparison axes: price 40, delivery 30, quality 20, payment 10.
	Comparison Weights

	FallbackUSDToTRY float64
	FallbackEURToTRY float64

	// MaxEarlyBonus caps the extra delivery points for delivering before the deadline.
	MaxEarlyBonus float64
	// EarlyBonusPerDay and LatePenaltyPerDay adjust the delivery axis per whole day.
	EarlyBonusPerDay  float64
	LatePenaltyPerDay float64
	// DefaultQuality is used when a response has no known supplier.
	DefaultQuality float64
}

func DefaultConfig() Config {
	return Config{
		Performance:       Weights{Delivery: 40, Quality: 30, Price: 20, Payment: 10},
		Comparison:        Weights{Price: 40, Delivery: 30, Quality: 20, Payment: 10},
		FallbackUSDToTRY:  33.0,
		FallbackEURToTRY:  36.5,
		MaxEarlyBonus:     6,
		EarlyBonusPerDay:  2,
		LatePenaltyPerDay: 3,
		DefaultQuality:    16,
	}
}

// WithFallbackRates returns a copy of cfg using the given fallback rates when
// they are positive.
func (cfg Config) WithFallbackRates(usd, eur float64) Config {
	if usd > 0 {
		cfg.FallbackUSDToTRY = usd
	}
	if eur > 0 {
		cfg.FallbackEURToTRY = eur
	}
	return cfg
}

type priceTier struct {
	maxRatio float64
	points   float64
}

// Lower ratio to the market price scores higher.
var priceTiers = []priceTier{
	{maxRatio: 0.95, points: 20},
	{maxRatio: 1.00, points: 15},
	{maxRatio: 1.10, points: 10},
}

const priceTierFloor = 5.0

type paymentTier struct {
	minDays int
	points  float64
}

var paymentTiers = []paymentTier{
	{minDays: 90, points: 10},
	{minDays: 60, points: 8},
	{minDays: 30, points: 5},
}

const paymentTierFloor = 3.0

func priceRatioPoints(ratio float64) float64 {
	for _, tier := range priceTiers {
		if ratio <= tier.maxRatio {
			return tier.points
		}
	}
	return priceTierFloor
}

// PaymentTermsPoints maps payment terms in days to the 0-10 payment axis.
func PaymentTermsPoints(days int) float64 {
	for _, tier := range paymentTiers {
		if days >= tier.minDays {
			return tier.points
		}
	}
	return paymentTierFloor
}
