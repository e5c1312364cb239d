package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/scoring"
)

func newSupplierService(repo *fakeSuppliers, recorder *fakeRecorder) *SupplierService {
	return NewSupplierService(repo, scoring.DefaultConfig(), recorder, zerolog.Nop())
}

func TestSupplierService_Create(t *testing.T) {
	repo := newFakeSuppliers()
	svc := newSupplierService(repo, newFakeRecorder())

	supplier, err := svc.Create(context.Background(), SupplierInput{
		Name:            " Acme Metal ",
		ContactPerson:   "Deniz",
		Email:           "sales@acme.example",
		Specializations: []string{"2001", "2001", " ", "3001"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if supplier.Name != "Acme Metal" {
		t.Errorf("Expected trimmed name, got %q", supplier.Name)
	}
	if supplier.PaymentTerms != model.DefaultPaymentTermsDays {
		t.Errorf("Expected default payment terms, got %d", supplier.PaymentTerms)
	}
	if supplier.Performance != model.DefaultSupplierPerformance() {
		t.Errorf("Expected default performance, got %+v", supplier.Performance)
	}
	if len(supplier.Specializations) != 2 {
		t.Errorf("Expected 2 specializations, got %v", supplier.Specializations)
	}
}

func TestSupplierService_CreateValidation(t *testing.T) {
	svc := newSupplierService(newFakeSuppliers(), newFakeRecorder())
	negative := -5
	tests := []struct {
		name  string
		input SupplierInput
	}{
		{"missing name", SupplierInput{ContactPerson: "a", Email: "a@b.c"}},
		{"missing contact", SupplierInput{Name: "a", Email: "a@b.c"}},
		{"bad email", SupplierInput{Name: "a", ContactPerson: "a", Email: "nope"}},
		{"negative terms", SupplierInput{Name: "a", ContactPerson: "a", Email: "a@b.c", PaymentTerms: &negative}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSupplierService_ComputeScore(t *testing.T) {
	svc := newSupplierService(newFakeSuppliers(), newFakeRecorder())

	scores, err := svc.ComputeScore(scoring.PerformanceInput{
		TotalOrders:       10,
		OnTimeDeliveries:  9,
		QualityRejections: 1,
		AveragePriceRatio: 0.9,
		PaymentTerms:      60,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if scores.TotalScore != 91 {
		t.Errorf("Expected 91, got %.1f", scores.TotalScore)
	}

	_, err = svc.ComputeScore(scoring.PerformanceInput{TotalOrders: 1, OnTimeDeliveries: 2, AveragePriceRatio: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestSupplierService_EditPerformance(t *testing.T) {
	supplier := newTestSupplier("Alpha")
	supplier.PaymentTerms = 60
	repo := newFakeSuppliers(supplier)
	recorder := newFakeRecorder()
	svc := newSupplierService(repo, recorder)
	ctx := context.Background()

	updated, err := svc.EditPerformance(ctx, supplier.ID, PerformanceEdit{
		TotalOrders:       10,
		OnTimeDeliveries:  9,
		QualityRejections: 1,
		AveragePriceRatio: 0.9,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.Performance.TotalScore != 91 {
		t.Errorf("Expected 91, got %.1f", updated.Performance.TotalScore)
	}
	if recorder.recomputed["manual"] != 1 {
		t.Errorf("Expected one manual recomputation")
	}

	_, err = svc.EditPerformance(ctx, supplier.ID, PerformanceEdit{TotalOrders: 1, QualityRejections: 3, AveragePriceRatio: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	stored, _ := repo.GetSupplier(ctx, supplier.ID)
	if stored.Performance.TotalOrders != 10 {
		t.Errorf("rejected edit must leave the record unchanged, got %+v", stored.Performance)
	}

	_, err = svc.EditPerformance(ctx, uuid.New(), PerformanceEdit{AveragePriceRatio: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSupplierService_UpdateKeepsPerformance(t *testing.T) {
	supplier := newTestSupplier("Alpha")
	supplier.Performance.TotalOrders = 4
	supplier.Performance.OnTimeDeliveries = 4
	repo := newFakeSuppliers(supplier)
	svc := newSupplierService(repo, newFakeRecorder())

	updated, err := svc.Update(context.Background(), supplier.ID, SupplierInput{
		Name:          "Alpha Renamed",
		ContactPerson: "Ece",
		Email:         "ece@alpha.example",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alpha Renamed" || updated.Performance.TotalOrders != 4 {
		t.Errorf("unexpected supplier after update: %+v", updated)
	}
}

func TestSupplierService_UpdatePaymentTermsRescores(t *testing.T) {
	supplier := newTestSupplier("Alpha")
	repo := newFakeSuppliers(supplier)
	recorder := newFakeRecorder()
	svc := newSupplierService(repo, recorder)
	ctx := context.Background()

	edited, err := svc.EditPerformance(ctx, supplier.ID, PerformanceEdit{
		TotalOrders:       10,
		OnTimeDeliveries:  9,
		QualityRejections: 1,
		AveragePriceRatio: 0.9,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Performance.TotalScore == 91 {
		t.Fatalf("Expected 30 day terms to score below 91, got %.1f", edited.Performance.TotalScore)
	}

	sixty := 60
	input := SupplierInput{Name: "Alpha", ContactPerson: "Ece", Email: "ece@alpha.example", PaymentTerms: &sixty}
	updated, err := svc.Update(ctx, supplier.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Performance.TotalScore != 91 {
		t.Errorf("Expected 91 after moving to 60 day terms, got %.1f", updated.Performance.TotalScore)
	}
	if updated.Performance.TotalOrders != 10 {
		t.Errorf("Expected counters to be kept, got %+v", updated.Performance)
	}
	stored, _ := repo.GetSupplier(ctx, supplier.ID)
	if stored.Performance.PaymentScore != updated.Performance.PaymentScore || stored.PaymentTerms != 60 {
		t.Errorf("Expected stored record to carry the new terms and score, got %+v", stored)
	}
	if recorder.recomputed["payment_terms"] != 1 {
		t.Errorf("Expected one payment_terms recomputation, got %d", recorder.recomputed["payment_terms"])
	}

	if _, err := svc.Update(ctx, supplier.ID, input); err != nil {
		t.Fatalf("update: %v", err)
	}
	if recorder.recomputed["payment_terms"] != 1 {
		t.Errorf("Expected no recomputation when terms are unchanged")
	}
}
