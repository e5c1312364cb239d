package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/scoring"
)

type SupplierService struct {
	repo    SupplierRepository
	scoring scoring.Config
	metrics Recorder
	log     zerolog.Logger
}

type SupplierInput struct {
	Name            string
	ContactPerson   string
	Email           string
	Phone           string
	Address         string
	TaxID           string
	Specializations []string
	PaymentTerms    *int
	Notes           string
}

// PerformanceEdit is a manual correction of a supplier's counters.
type PerformanceEdit struct {
	TotalOrders       int
	OnTimeDeliveries  int
	QualityRejections int
	AveragePriceRatio float64
}

func NewSupplierService(repo SupplierRepository, cfg scoring.Config, metrics Recorder, log zerolog.Logger) *SupplierService {
	return &SupplierService{repo: repo, scoring: cfg, metrics: metrics, log: log}
}

func (s *SupplierService) Create(ctx context.Context, input SupplierInput) (*model.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	supplier := &model.Supplier{
		ID:           uuid.New(),
		PaymentTerms: model.DefaultPaymentTermsDays,
		Performance:  model.DefaultSupplierPerformance(),
		CreatedAt:    time.Now().UTC(),
	}
	input.apply(supplier)
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) List(ctx context.Context, specialization string) ([]model.Supplier, error) {
	return s.repo.ListSuppliers(ctx, strings.TrimSpace(specialization))
}

func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, input SupplierInput) (*model.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	supplier, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	previousTerms := supplier.PaymentTerms
	input.apply(supplier)
	if err := s.repo.UpdateSupplier(ctx, supplier); err != nil {
		return nil, translate(err)
	}
	if supplier.PaymentTerms == previousTerms {
		return supplier, nil
	}

	// The payment axis of the stored score follows the standing terms.
	rescored, err := s.repo.UpdatePerformance(ctx, id, func(locked *model.Supplier) error {
		perf, err := scoring.RecomputePerformance(locked.Performance, locked.PaymentTerms, s.scoring)
		if err != nil {
			return err
		}
		locked.Performance = perf
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	s.metrics.PerformanceRecomputed("payment_terms")
	s.log.Info().
		Str("supplier_id", id.String()).
		Int("payment_terms", rescored.PaymentTerms).
		Float64("total_score", rescored.Performance.TotalScore).
		Msg("supplier rescored after payment terms change")
	return rescored, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.repo.DeleteSupplier(ctx, id))
}

// ComputeScore is the pure scoring entry point; nothing is stored.
func (s *SupplierService) ComputeScore(input scoring.PerformanceInput) (model.SupplierScores, error) {
	scores, err := scoring.ComputeSupplierScore(input, s.scoring)
	if err != nil {
		return model.SupplierScores{}, translate(err)
	}
	return scores, nil
}

// EditPerformance replaces the counters of a supplier and rescores the record
// under the same row lock used by delivery completion.
func (s *SupplierService) EditPerformance(ctx context.Context, id uuid.UUID, edit PerformanceEdit) (*model.Supplier, error) {
	supplier, err := s.repo.UpdatePerformance(ctx, id, func(supplier *model.Supplier) error {
		perf := supplier.Performance
		perf.TotalOrders = edit.TotalOrders
		perf.OnTimeDeliveries = edit.OnTimeDeliveries
		perf.QualityRejections = edit.QualityRejections
		perf.AveragePriceRatio = edit.AveragePriceRatio

		recomputed, err := scoring.RecomputePerformance(perf, supplier.PaymentTerms, s.scoring)
		if err != nil {
			return err
		}
		supplier.Performance = recomputed
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	s.metrics.PerformanceRecomputed("manual")
	s.log.Info().
		Str("supplier_id", id.String()).
		Float64("total_score", supplier.Performance.TotalScore).
		Msg("supplier performance edited")
	return supplier, nil
}

func (in SupplierInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ContactPerson) == "" {
		return fmt.Errorf("%w: contact_person is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if in.PaymentTerms != nil && *in.PaymentTerms < 0 {
		return fmt.Errorf("%w: payment_terms must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in SupplierInput) apply(supplier *model.Supplier) {
	supplier.Name = strings.TrimSpace(in.Name)
	supplier.ContactPerson = strings.TrimSpace(in.ContactPerson)
	supplier.Email = strings.TrimSpace(in.Email)
	supplier.Phone = strings.TrimSpace(in.Phone)
	supplier.Address = strings.TrimSpace(in.Address)
	supplier.TaxID = strings.TrimSpace(in.TaxID)
	supplier.Notes = in.Notes
	supplier.Specializations = normalizeList(in.Specializations)
	if in.PaymentTerms != nil {
		supplier.PaymentTerms = *in.PaymentTerms
	}
}

func normalizeList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
