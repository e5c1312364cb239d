package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/procurement/internal/model"
)

// ResolveRates picks the rates of the latest snapshot, falling back to the
// configured defaults for a missing snapshot or a non-positive rate.
func ResolveRates(latest *model.CurrencyRate, cfg Config) model.AppliedRates {
	rates := model.AppliedRates{USD: cfg.FallbackUSDToTRY, EUR: cfg.FallbackEURToTRY}
	if latest == nil {
		return rates
	}
	if latest.USDToTRY > 0 {
		rates.USD = latest.USDToTRY
	}
	if latest.EURToTRY > 0 {
		rates.EUR = latest.EURToTRY
	}
	return rates
}

// NormalizeToTRY converts an amount into TRY. TRY and unrecognised currencies
// pass through unchanged.
func NormalizeToTRY(amount float64, currency model.Currency, rates model.AppliedRates) decimal.Decimal {
	value := decimal.NewFromFloat(amount)
	switch currency {
	case model.CurrencyUSD:
		return value.Mul(decimal.NewFromFloat(rates.USD))
	case model.CurrencyEUR:
		return value.Mul(decimal.NewFromFloat(rates.EUR))
	default:
		return value
	}
}
