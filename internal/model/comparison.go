package model

type QuoteScores struct {
	Price    float64 `json:"price"`
	Delivery float64 `json:"delivery"`
	Quality  float64 `json:"quality"`
	Payment  float64 `json:"payment"`
	Total    float64 `json:"total"`
}

type ComparisonItem struct {
	Response QuoteResponse `json:"response"`
	// Supplier is nil when the response references an unknown supplier.
	Supplier        *Supplier   `json:"supplier"`
	NormalizedPrice float64     `json:"price_try"`
	Scores          QuoteScores `json:"scores"`
}

// QuoteComparison is the ranked decision-support table for one request.
type QuoteComparison struct {
	QuoteRequest  QuoteRequest     `json:"quote_request"`
	Items         []ComparisonItem `json:"comparison"`
	CurrencyRates AppliedRates     `json:"currency_rates"`
}
