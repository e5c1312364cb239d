package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/procurement/internal/model"
)

var (
	ErrDuplicateResponse = errors.New("quote response already submitted")
	ErrTokenUsed         = errors.New("access token already used")
	ErrRequestClosed     = errors.New("quote request is closed")
)

type QuoteRequestFilter struct {
	PartID *uuid.UUID
	Status *model.QuoteStatus
}

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// CreateRequest stores the request together with its supplier invitations.
func (r *QuoteRepository) CreateRequest(ctx context.Context, request *model.QuoteRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invitations := request.Invitations
		if err := tx.Omit("Invitations").Create(request).Error; err != nil {
			return err
		}
		if len(invitations) > 0 {
			if err := tx.Create(&invitations).Error; err != nil {
				return err
			}
		}
		request.Invitations = invitations
		return nil
	})
}

func (r *QuoteRepository) GetRequest(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	var request model.QuoteRequest
	err := r.db.WithContext(ctx).Preload("Invitations").Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *QuoteRepository) ListRequests(ctx context.Context, filter QuoteRequestFilter) ([]model.QuoteRequest, error) {
	query := r.db.WithContext(ctx).Preload("Invitations")
	if filter.PartID != nil {
		query = query.Where("part_id = ?", *filter.PartID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	var requests []model.QuoteRequest
	if err := query.Order("created_at DESC").Limit(1000).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequestStatus locks the request row and lets mutate decide the new status.
func (r *QuoteRepository) UpdateRequestStatus(
	ctx context.Context,
	id uuid.UUID,
	mutate func(request *model.QuoteRequest) error,
) (*model.QuoteRequest, error) {
	var updated model.QuoteRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request model.QuoteRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&request).Error; err != nil {
			return err
		}
		if err := mutate(&request); err != nil {
			return err
		}
		if err := tx.Model(&model.QuoteRequest{}).Where("id = ?", id).Update("status", request.Status).Error; err != nil {
			return err
		}
		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetRequest(ctx, updated.ID)
}

func (r *QuoteRepository) ResponseExists(ctx context.Context, requestID, supplierID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuoteResponse{}).
		Where("quote_request_id = ? AND supplier_id = ?", requestID, supplierID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateResponse stores a supplier's response. The request row is locked so a
// concurrent status change or a second submission cannot interleave; the
// unique (request, supplier) index is the final guard against duplicates. When
// tokenID is set the matching invitation token is consumed.
func (r *QuoteRepository) CreateResponse(ctx context.Context, response *model.QuoteResponse, tokenID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request model.QuoteRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", response.QuoteRequestID).First(&request).Error; err != nil {
			return err
		}
		if request.Status.Closed() {
			return ErrRequestClosed
		}

		if tokenID != nil {
			now := time.Now().UTC()
			result := tx.Model(&model.QuoteInvitation{}).
				Where("token_id = ? AND supplier_id = ? AND used_at IS NULL", *tokenID, response.SupplierID).
				Update("used_at", now)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTokenUsed
			}
		}

		if err := tx.Create(response).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateResponse
			}
			return err
		}

		if request.Status == model.QuoteStatusRequested {
			return tx.Model(&model.QuoteRequest{}).Where("id = ?", request.ID).
				Update("status", model.QuoteStatusReceived).Error
		}
		return nil
	})
}

func (r *QuoteRepository) GetResponse(ctx context.Context, id uuid.UUID) (*model.QuoteResponse, error) {
	var response model.QuoteResponse
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListResponses returns responses in submission order; comparison ties keep this order.
func (r *QuoteRepository) ListResponses(ctx context.Context, requestID uuid.UUID) ([]model.QuoteResponse, error) {
	var responses []model.QuoteResponse
	err := r.db.WithContext(ctx).
		Where("quote_request_id = ?", requestID).
		Order("created_at ASC, id ASC").
		Limit(100).
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
