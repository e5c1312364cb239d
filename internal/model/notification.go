package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationProject      = "project"
	NotificationQuoteRequest = "quote_request"
	NotificationQuote        = "quote_response"
	NotificationOrder        = "order"
)

type Notification struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	ReferenceType string     `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty" gorm:"type:uuid"`
	IsRead        bool       `json:"is_read"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
