package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/scoring"
)

type CurrencyService struct {
	repo    CurrencyRepository
	scoring scoring.Config
}

// CurrentRates is what GET /api/currency-rates returns. Snapshot is nil when
// only the configured fallback is in effect.
type CurrentRates struct {
	Rates    model.AppliedRates  `json:"rates"`
	Snapshot *model.CurrencyRate `json:"snapshot"`
	Fallback bool                `json:"fallback"`
}

func NewCurrencyService(repo CurrencyRepository, cfg scoring.Config) *CurrencyService {
	return &CurrencyService{repo: repo, scoring: cfg}
}

func (s *CurrencyService) Current(ctx context.Context) (*CurrentRates, error) {
	latest, err := s.repo.LatestRate(ctx)
	if err != nil {
		return nil, err
	}
	rates := scoring.ResolveRates(latest, s.scoring)
	fallback := latest == nil || latest.USDToTRY <= 0 || latest.EURToTRY <= 0
	return &CurrentRates{Rates: rates, Snapshot: latest, Fallback: fallback}, nil
}

func (s *CurrencyService) Update(ctx context.Context, usdToTRY, eurToTRY float64, updatedBy string) (*model.CurrencyRate, error) {
	if usdToTRY <= 0 || eurToTRY <= 0 {
		return nil, fmt.Errorf("%w: rates must be positive", ErrInvalidInput)
	}
	updatedBy = strings.TrimSpace(updatedBy)
	if updatedBy == "" {
		updatedBy = "system"
	}
	rate := &model.CurrencyRate{
		ID:        uuid.New(),
		USDToTRY:  usdToTRY,
		EURToTRY:  eurToTRY,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: updatedBy,
	}
	if err := s.repo.CreateRate(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}
