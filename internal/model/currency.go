package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// ParseCurrency accepts a case-insensitive currency code. Empty input means TRY.
func ParseCurrency(raw string) (Currency, bool) {
	switch Currency(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", CurrencyTRY:
		return CurrencyTRY, true
	case CurrencyUSD:
		return CurrencyUSD, true
	case CurrencyEUR:
		return CurrencyEUR, true
	}
	return "", false
}

// CurrencyRate is a snapshot of TRY exchange rates. The newest snapshot wins.
type CurrencyRate struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	USDToTRY  float64   `json:"usd_to_try" gorm:"column:usd_to_try"`
	EURToTRY  float64   `json:"eur_to_try" gorm:"column:eur_to_try"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

func (CurrencyRate) TableName() string {
	return "currency_rates"
}

// AppliedRates are the rates a comparison actually used.
type AppliedRates struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
}
