package scoring

import "github.com/shopspring/decimal"

func round1(value decimal.Decimal) decimal.Decimal {
	return value.Round(1)
}

// sumRounded rounds every component before adding them up, then rounds the total.
func sumRounded(components ...decimal.Decimal) (decimal.Decimal, []decimal.Decimal) {
	total := decimal.Zero
	rounded := make([]decimal.Decimal, len(components))
	for i, c := range components {
		rounded[i] = round1(c)
		total = total.Add(rounded[i])
	}
	return round1(total), rounded
}
