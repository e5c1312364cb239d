package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/procurement/internal/model"
)

var deadline = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newSupplier(quality float64) model.Supplier {
	perf := model.DefaultSupplierPerformance()
	perf.QualityScore = quality
	return model.Supplier{ID: uuid.New(), Name: "supplier", Performance: perf}
}

func newResponse(supplierID uuid.UUID, total float64, currency model.Currency, deliveryOffsetDays, terms int) model.QuoteResponse {
	return model.QuoteResponse{
		ID:           uuid.New(),
		SupplierID:   supplierID,
		TotalPrice:   total,
		Currency:     currency,
		DeliveryDate: deadline.AddDate(0, 0, deliveryOffsetDays),
		PaymentTerms: terms,
	}
}

func TestCompare_TwoResponseScenario(t *testing.T) {
	a := newSupplier(30)
	b := newSupplier(30)
	respA := newResponse(a.ID, 1000, model.CurrencyTRY, 0, 30)
	respB := newResponse(b.ID, 1200, model.CurrencyTRY, -2, 90)

	result := Compare(model.QuoteRequest{Deadline: deadline}, []model.QuoteResponse{respA, respB}, []model.Supplier{a, b}, nil, DefaultConfig())
	if len(result.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result.Items))
	}

	scores := map[uuid.UUID]model.QuoteScores{}
	for _, item := range result.Items {
		scores[item.Response.ID] = item.Scores
	}
	if scores[respA.ID].Price != 40.0 {
		t.Errorf("Expected A price 40.0, got %.1f", scores[respA.ID].Price)
	}
	if scores[respB.ID].Price != 33.3 {
		t.Errorf("Expected B price 33.3, got %.1f", scores[respB.ID].Price)
	}
	if scores[respB.ID].Delivery != 34 {
		t.Errorf("Expected B delivery 34, got %.1f", scores[respB.ID].Delivery)
	}
	// A: 40 + 30 + 20 + 5 = 95, B: 33.3 + 34 + 20 + 10 = 97.3
	if scores[respA.ID].Total != 95 || scores[respB.ID].Total != 97.3 {
		t.Errorf("Unexpected totals A=%.1f B=%.1f", scores[respA.ID].Total, scores[respB.ID].Total)
	}
	if result.Items[0].Response.ID != respB.ID {
		t.Errorf("Expected B to rank first on combined score")
	}
}

func TestCompare_CheapestScoresFullPricePoints(t *testing.T) {
	s := newSupplier(24)
	responses := []model.QuoteResponse{
		newResponse(s.ID, 100, model.CurrencyUSD, 0, 30),  // 3300 TRY
		newResponse(s.ID, 3000, model.CurrencyTRY, 0, 30), // cheapest
		newResponse(s.ID, 95, model.CurrencyEUR, 0, 30),   // 3467.5 TRY
	}
	result := Compare(model.QuoteRequest{Deadline: deadline}, responses, []model.Supplier{s}, nil, DefaultConfig())
	for _, item := range result.Items {
		if item.Response.ID == responses[1].ID && item.Scores.Price != 40.0 {
			t.Errorf("Expected cheapest to score 40, got %.1f", item.Scores.Price)
		}
		if item.Response.ID != responses[1].ID && item.Scores.Price >= 40.0 {
			t.Errorf("Expected non-cheapest below 40, got %.1f", item.Scores.Price)
		}
	}
}

func TestCompare_NonPositiveMinimumGivesFullPricePoints(t *testing.T) {
	s := newSupplier(30)
	responses := []model.QuoteResponse{
		newResponse(s.ID, 0, model.CurrencyTRY, 0, 30),
		newResponse(s.ID, 500, model.CurrencyTRY, 0, 30),
	}
	result := Compare(model.QuoteRequest{Deadline: deadline}, responses, []model.Supplier{s}, nil, DefaultConfig())
	for _, item := range result.Items {
		if item.Scores.Price != 40.0 {
			t.Errorf("Expected 40 for degenerate minimum, got %.1f", item.Scores.Price)
		}
	}
}

func TestCompare_CurrencyNormalization(t *testing.T) {
	s := newSupplier(30)
	responses := []model.QuoteResponse{
		newResponse(s.ID, 1234.5, model.CurrencyUSD, 0, 30),
		newResponse(s.ID, 10, model.CurrencyEUR, 0, 30),
		newResponse(s.ID, 777, model.CurrencyTRY, 0, 30),
	}

	t.Run("fallback rates", func(t *testing.T) {
		result := Compare(model.QuoteRequest{Deadline: deadline}, responses, nil, nil, DefaultConfig())
		if result.CurrencyRates.USD != 33.0 || result.CurrencyRates.EUR != 36.5 {
			t.Fatalf("Expected fallback rates, got %+v", result.CurrencyRates)
		}
		want := map[uuid.UUID]float64{
			responses[0].ID: 1234.5 * 33.0,
			responses[1].ID: 365,
			responses[2].ID: 777,
		}
		for _, item := range result.Items {
			if math.Abs(item.NormalizedPrice-want[item.Response.ID]) > 1e-9 {
				t.Errorf("Expected normalized %.4f, got %.4f", want[item.Response.ID], item.NormalizedPrice)
			}
		}
	})

	t.Run("latest snapshot", func(t *testing.T) {
		latest := &model.CurrencyRate{USDToTRY: 40, EURToTRY: 0}
		result := Compare(model.QuoteRequest{Deadline: deadline}, responses[:2], nil, latest, DefaultConfig())
		if result.CurrencyRates.USD != 40 || result.CurrencyRates.EUR != 36.5 {
			t.Fatalf("Unexpected rates %+v", result.CurrencyRates)
		}
	})
}

func TestCompare_UnknownSupplierKept(t *testing.T) {
	known := newSupplier(27)
	resp := []model.QuoteResponse{
		newResponse(known.ID, 1000, model.CurrencyTRY, 0, 30),
		newResponse(uuid.New(), 1000, model.CurrencyTRY, 0, 30),
	}
	result := Compare(model.QuoteRequest{Deadline: deadline}, resp, []model.Supplier{known}, nil, DefaultConfig())
	if len(result.Items) != 2 {
		t.Fatalf("Expected both responses, got %d", len(result.Items))
	}
	for _, item := range result.Items {
		switch item.Response.ID {
		case resp[0].ID:
			if item.Supplier == nil || item.Scores.Quality != 18 {
				t.Errorf("Expected known supplier with quality 18, got %+v", item.Scores)
			}
		case resp[1].ID:
			if item.Supplier != nil {
				t.Errorf("Expected nil supplier for unknown reference")
			}
			if item.Scores.Quality != 16 {
				t.Errorf("Expected default quality 16, got %.1f", item.Scores.Quality)
			}
		}
	}
}

func TestCompare_TiesKeepInsertionOrder(t *testing.T) {
	s := newSupplier(30)
	responses := make([]model.QuoteResponse, 5)
	for i := range responses {
		responses[i] = newResponse(s.ID, 1000, model.CurrencyTRY, 0, 30)
	}
	result := Compare(model.QuoteRequest{Deadline: deadline}, responses, []model.Supplier{s}, nil, DefaultConfig())
	for i, item := range result.Items {
		if item.Response.ID != responses[i].ID {
			t.Fatalf("Expected insertion order at %d", i)
		}
	}
}

func TestCompare_RankedDescending(t *testing.T) {
	s := newSupplier(30)
	responses := []model.QuoteResponse{
		newResponse(s.ID, 2000, model.CurrencyTRY, 10, 0),
		newResponse(s.ID, 1000, model.CurrencyTRY, -5, 90),
		newResponse(s.ID, 1500, model.CurrencyTRY, 1, 60),
	}
	result := Compare(model.QuoteRequest{Deadline: deadline}, responses, []model.Supplier{s}, nil, DefaultConfig())
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].Scores.Total > result.Items[i-1].Scores.Total {
			t.Fatalf("Items not sorted descending at %d", i)
		}
	}
}

func TestCompare_NoResponses(t *testing.T) {
	result := Compare(model.QuoteRequest{Deadline: deadline}, nil, nil, nil, DefaultConfig())
	if len(result.Items) != 0 {
		t.Fatalf("Expected empty comparison, got %d items", len(result.Items))
	}
}

func TestDeliveryPoints(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		days int
		want float64
	}{
		{-10, 36}, {-3, 36}, {-2, 34}, {-1, 32}, {0, 30}, {1, 27}, {5, 15}, {10, 0}, {30, 0},
	}
	for _, tc := range cases {
		if got := DeliveryPoints(tc.days, cfg); got != tc.want {
			t.Errorf("%d days: expected %.0f, got %.0f", tc.days, tc.want, got)
		}
	}

	prev := math.Inf(1)
	for d := -20; d <= 20; d++ {
		got := DeliveryPoints(d, cfg)
		if got > prev {
			t.Fatalf("delivery score increased at %d days", d)
		}
		if got > cfg.Comparison.Delivery+cfg.MaxEarlyBonus {
			t.Fatalf("early bonus exceeded cap at %d days", d)
		}
		prev = got
	}
}

func TestDaysLate(t *testing.T) {
	cases := []struct {
		name     string
		delivery time.Time
		want     int
	}{
		{"same day", deadline, 0},
		{"hours late", deadline.Add(5 * time.Hour), 0},
		{"one day late", deadline.Add(24 * time.Hour), 1},
		{"hours early", deadline.Add(-5 * time.Hour), -1},
		{"two days early", deadline.AddDate(0, 0, -2), -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysLate(tc.delivery, deadline); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}
