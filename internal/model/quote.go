package model

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuoteStatusRequested QuoteStatus = "requested"
	QuoteStatusReceived  QuoteStatus = "received"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusRequested: {QuoteStatusReceived, QuoteStatusRejected, QuoteStatusExpired},
	QuoteStatusReceived:  {QuoteStatusApproved, QuoteStatusRejected, QuoteStatusExpired},
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusRequested, QuoteStatusReceived, QuoteStatusApproved, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// Closed reports whether the request no longer accepts responses.
func (s QuoteStatus) Closed() bool {
	return s == QuoteStatusApproved || s == QuoteStatusRejected || s == QuoteStatusExpired
}

// CanTransitionTo only allows forward moves.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type QuoteRequest struct {
	ID                  uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	PartID              uuid.UUID         `json:"part_id" gorm:"type:uuid"`
	ManufacturingMethod string            `json:"manufacturing_method"`
	Deadline            time.Time         `json:"deadline"`
	Status              QuoteStatus       `json:"status"`
	Notes               string            `json:"notes,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	Invitations         []QuoteInvitation `json:"invitations" gorm:"foreignKey:QuoteRequestID"`
}

func (QuoteRequest) TableName() string {
	return "quote_requests"
}

func (r QuoteRequest) SupplierIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Invitations))
	for _, inv := range r.Invitations {
		ids = append(ids, inv.SupplierID)
	}
	return ids
}

func (r QuoteRequest) Invitation(supplierID uuid.UUID) (QuoteInvitation, bool) {
	for _, inv := range r.Invitations {
		if inv.SupplierID == supplierID {
			return inv, true
		}
	}
	return QuoteInvitation{}, false
}

// QuoteInvitation links an invited supplier to a request and carries the id of
// the single-use access token issued for external submission.
type QuoteInvitation struct {
	QuoteRequestID uuid.UUID  `json:"quote_request_id" gorm:"type:uuid;primaryKey"`
	SupplierID     uuid.UUID  `json:"supplier_id" gorm:"type:uuid;primaryKey"`
	TokenID        uuid.UUID  `json:"-" gorm:"type:uuid"`
	AccessToken    string     `json:"access_token,omitempty" gorm:"-"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
}

func (QuoteInvitation) TableName() string {
	return "quote_request_suppliers"
}

type QuoteResponseStatus string

const (
	QuoteResponseReceived QuoteResponseStatus = "received"
	QuoteResponseApproved QuoteResponseStatus = "approved"
	QuoteResponseRejected QuoteResponseStatus = "rejected"
)

type QuoteResponse struct {
	ID             uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	QuoteRequestID uuid.UUID           `json:"quote_request_id" gorm:"type:uuid"`
	SupplierID     uuid.UUID           `json:"supplier_id" gorm:"type:uuid"`
	UnitPrice      float64             `json:"unit_price"`
	Currency       Currency            `json:"currency"`
	TotalPrice     float64             `json:"total_price"`
	DeliveryDate   time.Time           `json:"delivery_date"`
	PaymentTerms   int                 `json:"payment_terms"`
	Status         QuoteResponseStatus `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

func (QuoteResponse) TableName() string {
	return "quote_responses"
}
